package slack

import (
	"context"
	"encoding/json"
)

// MessageIter walks the full channel history in request order, one page at
// a time. Usage mirrors bufio.Scanner:
//
//	it := client.Messages(ctx)
//	for it.Next() {
//		handle(it.Message())
//	}
//	if err := it.Err(); err != nil { ... }
//
// The iterator is single-pass and not restartable; the pagination cursor is
// consumed as it advances. Construct a new one to iterate again.
type MessageIter struct {
	ctx     context.Context
	client  *Client
	current chunk
	msg     json.RawMessage
	err     error
	done    bool
}

// Messages returns an iterator over every message in the client's channel.
// The first page is fetched on the first call to Next.
func (c *Client) Messages(ctx context.Context) *MessageIter {
	return &MessageIter{ctx: ctx, client: c}
}

// Next advances to the next message, blocking on a page fetch exactly when
// the current chunk is exhausted and more pages exist. It returns false at
// the end of the history or on the first error; Err distinguishes the two.
func (it *MessageIter) Next() bool {
	if it.done {
		return false
	}

	if it.current == nil {
		if it.current, it.err = it.client.fetchChunk(it.ctx, ""); it.err != nil {
			it.done = true
			return false
		}
	}

	for {
		if msg, ok := it.current.take(); ok {
			it.msg = msg
			return true
		}

		nt, ok := it.current.(*nonTerminalChunk)
		if !ok {
			// Terminal chunk exhausted: the sequence ends.
			it.done = true
			return false
		}

		if it.current, it.err = it.client.fetchChunk(it.ctx, nt.nextCursor); it.err != nil {
			it.done = true
			return false
		}
	}
}

// Message returns the message produced by the last successful Next.
func (it *MessageIter) Message() json.RawMessage {
	return it.msg
}

// Err returns the error that stopped iteration, if any.
func (it *MessageIter) Err() error {
	return it.err
}
