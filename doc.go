// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package circ provides a growable double-ended queue over a single
// power-of-2 ring buffer.
//
// A Queue keeps its elements in one contiguous slice and wraps indices with
// a bitmask, avoiding the per-node allocations and pointer chasing of a
// linked list:
//
//   - PushBack: amortized O(1), doubles the buffer when full
//   - PopFront, PopBack: O(1)
//   - At, Front, Back: O(1) positional access
//
// # Quick Start
//
//	d, err := circ.NewDeque[Event](1024) // room for 1024 before growing
//	d.PushBack(ev)
//	first, err := d.PopFront() // FIFO
//	last, err := d.PopBack()   // LIFO
//
// Queue[T, S] takes the cursor type as a second parameter. Narrow cursors
// shrink the header and bound the capacity:
//
//	q, err := circ.NewQueue[Sample, uint16](255)
//
// Deque[T] is Queue[T, uint].
//
// Builder configures growth limits and observers:
//
//	q, err := circ.Build[Event](circ.New(64).
//	    MaxCapacity(1 << 20).
//	    Logger(log))
//
// # Capacity
//
// The buffer length is always a power of 2 and one slot stays free, so a
// queue created for n elements gets n+1 slots rounded up:
//
//	circ.NewDeque[int](3)    // 4 slots, Cap() = 3
//	circ.NewDeque[int](4)    // 8 slots, Cap() = 7
//	circ.NewDeque[int](1000) // 1024 slots, Cap() = 1023
//
// Cap reports the number of elements the queue holds before the next push
// grows it, so Len() <= Cap() always holds.
//
// Growth doubles the buffer and copies the live elements, in order, to the
// front of the new buffer. A failed growth returns [ErrNoMemory] and leaves
// the queue exactly as it was.
//
// # Front Insertion
//
// There is no PushFront. The queue grows only from the back; callers that
// need to insert at the front should use a different structure.
//
// # Error Handling
//
// Popping an empty queue returns [ErrEmpty], which wraps [ErrWouldBlock]
// from [code.hybscloud.com/iox]:
//
//	v, err := q.PopFront()
//	if circ.IsEmpty(err) {
//	    // nothing queued, nothing changed
//	}
//
//	circ.IsWouldBlock(err) // true for ErrEmpty and a full or empty Relay
//	circ.IsSemantic(err)   // true if control flow signal
//	circ.IsNonFailure(err) // true if nil or ErrWouldBlock
//
// Allocation failures return [ErrNoMemory]; invalid sizes return
// [ErrInvalidSize]. No error path modifies the queue.
//
// # Iteration
//
//	for v := range q.Values() { ... }
//	for i, p := range q.All() { ... }
//	q.ForEach(func(p *Event) { ... })
//	for c := q.Begin(); !c.Equal(q.End()); c = c.Next() { ... }
//
// Cursor ordering (Compare, Less) is computed from the logical offset
// relative to the front, never from raw slot indices, so it is correct when
// the live range wraps around the end of the buffer.
//
// # Ownership
//
// Clone allocates a new buffer and copies the live elements. Move transfers
// the buffer to a new Queue and leaves the source empty. Free discards the
// elements and drops the buffer. Elements whose type or pointer type
// implements [Releaser] are released, front to back, when Clear or Free
// discards them; nil pointer elements are skipped.
//
// # Thread Safety
//
// A Queue is owned by one goroutine at a time and is not safe for
// concurrent use. [Relay] passes queues between goroutines by moving them:
//
//	r := circ.NewRelay[Event, uint](8)
//	r.SendWait(ctx, batch) // batch is now empty
//	next, err := r.RecvWait(ctx)
//
// Relay is single-producer single-consumer. It uses
// [code.hybscloud.com/atomix] for ordered atomics and
// [code.hybscloud.com/spin] and [iox.Backoff] while waiting.
//
// # Race Detection
//
// Go's race detector cannot observe the happens-before edges that Relay
// establishes through atomix acquire-release operations, and may report
// false positives on the slot buffer. Concurrent Relay tests are skipped
// when [RaceEnabled] is true.
package circ
