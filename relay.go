// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ

import (
	"context"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// Relay hands whole queues from one goroutine to another.
//
// A Queue has a single owner. Relay moves ownership between pipeline stages
// without copying elements: Send takes over the buffer of the given queue
// (leaving it empty and reusable) and Recv returns it to the next stage.
//
// Based on Lamport's ring buffer with cached index optimization.
// Exactly one goroutine may send and exactly one goroutine may receive.
//
// Example:
//
//	r := circ.NewRelay[Event, uint](8)
//
//	go func() { // Stage 1
//	    batch, _ := circ.NewDeque[Event](64)
//	    for ev := range input {
//	        batch.PushBack(ev)
//	        if batch.Len() == 64 {
//	            r.SendWait(ctx, batch) // batch is empty again
//	        }
//	    }
//	    r.SendWait(ctx, batch)
//	    r.Close()
//	}()
//
//	for { // Stage 2
//	    batch, err := r.RecvWait(ctx)
//	    if err != nil {
//	        break // ErrClosed once drained
//	    }
//	    batch.ForEach(handle)
//	}
type Relay[T any, S Index] struct {
	_          pad
	head       atomix.Uint64 // Receiver reads from here
	_          pad
	cachedTail uint64 // Receiver's cached view of tail
	_          pad
	tail       atomix.Uint64 // Sender writes here
	_          pad
	cachedHead uint64 // Sender's cached view of head
	_          pad
	closed     atomix.Bool
	_          pad
	buffer     []*Queue[T, S]
	mask       uint64
}

// NewRelay creates a relay holding up to capacity queues in flight.
// Capacity rounds up to the next power of 2.
//
// Panics if capacity < 2.
func NewRelay[T any, S Index](capacity int) *Relay[T, S] {
	if capacity < 2 {
		panic("circ: relay capacity must be >= 2")
	}

	n := RoundUp(uint64(capacity))
	return &Relay[T, S]{
		buffer: make([]*Queue[T, S], n),
		mask:   n - 1,
	}
}

// Send moves the contents of q into the relay (sender only).
// On success q is left empty, without a buffer, and may be refilled.
// Returns ErrWouldBlock if the relay is full, ErrClosed after Close and
// ErrInvalidSize if q is nil; q is untouched on error.
func (r *Relay[T, S]) Send(q *Queue[T, S]) error {
	if q == nil {
		return ErrInvalidSize
	}
	if r.closed.LoadAcquire() {
		return ErrClosed
	}
	tail := r.tail.LoadRelaxed()
	if tail-r.cachedHead > r.mask {
		r.cachedHead = r.head.LoadAcquire()
		if tail-r.cachedHead > r.mask {
			return ErrWouldBlock
		}
	}

	r.buffer[tail&r.mask] = q.Move()
	r.tail.StoreRelease(tail + 1)
	return nil
}

// Recv removes and returns the oldest queue (receiver only).
// Returns ErrWouldBlock if the relay is empty, and ErrClosed if it is
// empty and closed.
func (r *Relay[T, S]) Recv() (*Queue[T, S], error) {
	head := r.head.LoadRelaxed()
	if head >= r.cachedTail {
		closed := r.closed.LoadAcquire()
		r.cachedTail = r.tail.LoadAcquire()
		if head >= r.cachedTail {
			if closed {
				return nil, ErrClosed
			}
			return nil, ErrWouldBlock
		}
	}

	q := r.buffer[head&r.mask]
	r.buffer[head&r.mask] = nil
	r.head.StoreRelease(head + 1)
	return q, nil
}

// SendWait is Send that waits for room until ctx is done.
func (r *Relay[T, S]) SendWait(ctx context.Context, q *Queue[T, S]) error {
	sw := spin.Wait{}
	backoff := iox.Backoff{}
	for {
		err := r.Send(q)
		if !IsWouldBlock(err) {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		relayWait(&sw, &backoff)
	}
}

// RecvWait is Recv that waits for a queue until ctx is done.
func (r *Relay[T, S]) RecvWait(ctx context.Context) (*Queue[T, S], error) {
	sw := spin.Wait{}
	backoff := iox.Backoff{}
	for {
		q, err := r.Recv()
		if !IsWouldBlock(err) {
			return q, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		relayWait(&sw, &backoff)
	}
}

// relayWait pauses the CPU until sw would start yielding the processor, then
// sleeps with backoff.
func relayWait(sw *spin.Wait, backoff *iox.Backoff) {
	if sw.WillYield() {
		backoff.Wait()
		return
	}
	sw.Once()
}

// Close signals that no more queues will be sent (sender only).
// Queues already in flight can still be received.
func (r *Relay[T, S]) Close() {
	r.closed.StoreRelease(true)
}

// Cap returns the relay capacity.
func (r *Relay[T, S]) Cap() int {
	return int(r.mask + 1)
}
