// Package export serializes a message stream as a single JSON array
// without materializing it.
package export

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Source yields messages one at a time in bufio.Scanner style: Next
// advances and reports whether a message is available, Message returns it,
// and Err returns the error that ended iteration early, if any.
type Source interface {
	Next() bool
	Message() json.RawMessage
	Err() error
}

// StreamArray writes every message from src to w as one JSON array.
//
// Output is incremental: the opening bracket goes out before the first
// message is pulled, and memory use is bounded by one pending element plus
// the write buffer. Separators are decided by one-element lookahead, so
// comma placement is correct no matter how the source batches its pages.
//
// On failure the partial array is left unterminated on the sink. That is
// accepted: closing the bracket would make truncated output look complete,
// and buffering the whole result to avoid it would defeat the streaming.
func StreamArray(w io.Writer, src Source) error {
	out := bufio.NewWriter(w)

	if err := out.WriteByte('['); err != nil {
		return fmt.Errorf("writing array open: %w", err)
	}

	var buf bytes.Buffer
	hasNext := src.Next()
	for hasNext {
		msg := src.Message()
		hasNext = src.Next()

		// Messages are opaque; compacting normalizes whitespace without
		// interpreting the content.
		buf.Reset()
		if err := json.Compact(&buf, msg); err != nil {
			return fmt.Errorf("serializing message: %w", err)
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing message: %w", err)
		}

		if hasNext {
			if err := out.WriteByte(','); err != nil {
				return fmt.Errorf("writing separator: %w", err)
			}
		}
	}

	if err := src.Err(); err != nil {
		out.Flush()
		return err
	}

	if err := out.WriteByte(']'); err != nil {
		return fmt.Errorf("writing array close: %w", err)
	}
	return out.Flush()
}
