package slack

import "fmt"

// APIError is an explicit ok=false reply from the Slack API. These are
// deterministic failures (bad auth, unknown channel) and are never retried.
type APIError struct {
	Reason string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack api error: %s", e.Reason)
}

// ProtocolError reports a reply that violates the pagination contract: the
// API claimed more pages exist but omitted the continuation cursor.
type ProtocolError struct {
	Missing string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("slack api response has more pages but is missing %s", e.Missing)
}
