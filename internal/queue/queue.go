// Package queue provides an unbounded multi-producer, multi-consumer channel.
//
// Go channels have a fixed capacity, so a slow consumer eventually blocks its
// producers. Unbounded places a buffering goroutine between an input and an
// output channel: sends on In never wait for a receiver, and memory grows
// with the number of items sent but not yet received.
package queue

import "context"

// Unbounded is a channel pair joined by a growable buffer.
//
// Producers send on In and the owner closes In once every producer is done.
// Consumers range over Out, which is closed after In is closed and every
// buffered item has been received.
type Unbounded[T any] struct {
	in  chan T
	out chan T
}

// New starts the buffering goroutine. When ctx is cancelled, buffered and
// future items are discarded so producers never block, and Out is closed as
// soon as In is closed.
func New[T any](ctx context.Context) *Unbounded[T] {
	u := &Unbounded[T]{
		in:  make(chan T),
		out: make(chan T),
	}
	go u.run(ctx)
	return u
}

// In returns the send side.
func (u *Unbounded[T]) In() chan<- T { return u.in }

// Out returns the receive side.
func (u *Unbounded[T]) Out() <-chan T { return u.out }

// Close closes the send side. It must be called exactly once, after the last send.
func (u *Unbounded[T]) Close() { close(u.in) }

func (u *Unbounded[T]) run(ctx context.Context) {
	defer close(u.out)

	var (
		buf     []T
		in      = u.in
		done    = ctx.Done()
		discard bool
	)

	for in != nil || len(buf) > 0 {
		var (
			out  chan T
			next T
		)
		if len(buf) > 0 {
			out = u.out
			next = buf[0]
		}

		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			if !discard {
				buf = append(buf, v)
			}
		case out <- next:
			var zero T
			buf[0] = zero
			buf = buf[1:]
		case <-done:
			done = nil
			discard = true
			buf = nil
		}
	}
}
