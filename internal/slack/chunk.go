package slack

import "encoding/json"

// chunk is one validated page of history. Exactly two implementations
// exist: terminalChunk ends the sequence, nonTerminalChunk carries the
// cursor for the next page. Keeping the cursor inside the non-terminal
// variant (rather than as a nullable field next to a has-more flag) makes
// "more pages implies a cursor" hold by construction.
type chunk interface {
	// take returns the next unread message in the chunk, or false when
	// the chunk is exhausted.
	take() (json.RawMessage, bool)
}

type terminalChunk struct {
	messages []json.RawMessage
	pos      int
}

func (c *terminalChunk) take() (json.RawMessage, bool) {
	if c.pos >= len(c.messages) {
		return nil, false
	}
	m := c.messages[c.pos]
	c.pos++
	return m, true
}

type nonTerminalChunk struct {
	terminalChunk
	nextCursor string
}

// newChunk validates a raw history reply. In order: an explicit API error
// is surfaced as *APIError; a reply claiming more pages without a cursor is
// a *ProtocolError (continuing would silently drop history); otherwise the
// messages become a terminal or non-terminal chunk.
func newChunk(resp *historyResponse) (chunk, error) {
	if !resp.OK {
		reason := resp.Error
		if reason == "" {
			reason = "Unknown"
		}
		return nil, &APIError{Reason: reason}
	}

	if resp.HasMore {
		if resp.ResponseMetadata == nil || resp.ResponseMetadata.NextCursor == "" {
			return nil, &ProtocolError{Missing: "next_cursor"}
		}
		return &nonTerminalChunk{
			terminalChunk: terminalChunk{messages: resp.Messages},
			nextCursor:    resp.ResponseMetadata.NextCursor,
		}, nil
	}

	return &terminalChunk{messages: resp.Messages}, nil
}
