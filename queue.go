// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ

import (
	"iter"
	"math"
	"reflect"
	"runtime"
	"slices"
	"unsafe"
)

// Queue is a growable double-ended queue over a power-of-2 ring buffer.
//
// Live elements occupy the slots [start, stop) read circularly; every index
// wraps with a bitmask instead of a modulus. One slot is always kept free so
// that start == stop means empty. Pushing onto a full queue doubles the
// buffer and linearizes the live range at offset 0.
//
// Elements are pushed at the back only and popped from either end:
// PushBack + PopFront gives FIFO order, PushBack + PopBack gives LIFO order.
// There is no PushFront.
//
// Queue is not safe for concurrent use. The zero value is an empty queue
// without a buffer; the first push allocates one.
//
// Pointers returned by PushBack, Front, Back and At, and every Cursor, are
// invalidated by operations that may grow the buffer: PushBack, Push,
// EmplaceBack, Resize and Reserve.
type Queue[T any, S Index] struct {
	mask  S
	start S // First live slot
	stop  S // One past the last live slot
	buf   []T
	opts  *Options
}

// Deque is a Queue with machine-word cursors.
type Deque[T any] = Queue[T, uint]

// Releaser is implemented by element types that own resources, either by the
// element type itself (as for pointer handles like *Conn) or by its pointer
// (as for struct values). Elements discarded by Clear or Free are released in
// logical order, front to back; nil elements are skipped. Popped elements are
// handed to the caller instead and are not released.
type Releaser interface {
	Release()
}

// NewQueue creates a queue with room for at least size elements before the
// first growth. The buffer holds size+1 slots rounded up to the next power
// of 2.
//
// Returns [ErrNoMemory] if the buffer cannot be allocated or its mask does
// not fit S.
func NewQueue[T any, S Index](size S) (*Queue[T, S], error) {
	return newQueue[T, S](uint64(size), nil)
}

// NewDeque creates a Deque with room for at least size elements before the
// first growth. Returns [ErrInvalidSize] if size < 0.
func NewDeque[T any](size int) (*Deque[T], error) {
	if size < 0 {
		return nil, ErrInvalidSize
	}
	return newQueue[T, uint](uint64(size), nil)
}

func newQueue[T any, S Index](size uint64, opts *Options) (*Queue[T, S], error) {
	if size >= 1<<63 {
		return nil, ErrNoMemory
	}
	n, ok := planCapacity[S](size + 1)
	if !ok {
		return nil, ErrNoMemory
	}
	buf, err := allocate[T](n, opts)
	if err != nil {
		return nil, err
	}
	return &Queue[T, S]{mask: S(n - 1), buf: buf, opts: opts}, nil
}

// allocate returns a zeroed buffer of n slots.
// Requests the runtime refuses to satisfy are reported as ErrNoMemory.
func allocate[T any](n uint64, opts *Options) (buf []T, err error) {
	if limit := opts.limit(); limit != 0 && n > limit {
		return nil, ErrNoMemory
	}
	if size := uint64(unsafe.Sizeof(*(*T)(nil))); size != 0 && n > math.MaxInt/size {
		return nil, ErrNoMemory
	}
	if n > math.MaxInt {
		return nil, ErrNoMemory
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			buf, err = nil, ErrNoMemory
		}
	}()
	return make([]T, n), nil
}

// =============================================================================
// Push / Pop
// =============================================================================

// PushBack appends elem at the back of the queue and returns a pointer to
// the stored element.
//
// A full queue doubles its buffer first. If that fails the error is
// [ErrNoMemory] and the queue is unchanged.
func (q *Queue[T, S]) PushBack(elem T) (*T, error) {
	if err := q.reserveOne(); err != nil {
		return nil, err
	}
	p := &q.buf[q.stop]
	*p = elem
	q.stop = (q.stop + 1) & q.mask
	return p, nil
}

// Push is PushBack.
func (q *Queue[T, S]) Push(elem T) (*T, error) {
	return q.PushBack(elem)
}

// EmplaceBack constructs a new back element in place: init is called with a
// pointer to the zeroed slot before the slot becomes live.
func (q *Queue[T, S]) EmplaceBack(init func(*T)) (*T, error) {
	if err := q.reserveOne(); err != nil {
		return nil, err
	}
	p := &q.buf[q.stop]
	init(p)
	q.stop = (q.stop + 1) & q.mask
	return p, nil
}

// PopFront removes and returns the front element.
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *Queue[T, S]) PopFront() (T, error) {
	var zero T
	if q.start == q.stop {
		return zero, ErrEmpty
	}
	p := &q.buf[q.start]
	elem := *p
	*p = zero
	q.start = (q.start + 1) & q.mask
	return elem, nil
}

// Pop is PopFront.
func (q *Queue[T, S]) Pop() (T, error) {
	return q.PopFront()
}

// PopBack removes and returns the back element.
// Returns (zero-value, ErrEmpty) if the queue is empty.
func (q *Queue[T, S]) PopBack() (T, error) {
	var zero T
	if q.start == q.stop {
		return zero, ErrEmpty
	}
	q.stop = (q.stop - 1) & q.mask
	p := &q.buf[q.stop]
	elem := *p
	*p = zero
	return elem, nil
}

// PushPop pops the front element, then pushes elem at the back.
// If the queue is empty nothing is pushed and the error is [ErrEmpty].
// PushPop never grows the buffer.
func (q *Queue[T, S]) PushPop(elem T) (T, error) {
	front, err := q.PopFront()
	if err != nil {
		return front, err
	}
	q.buf[q.stop] = elem
	q.stop = (q.stop + 1) & q.mask
	return front, nil
}

// =============================================================================
// Access
// =============================================================================

// Front returns a pointer to the front element.
// The result is unspecified if the queue is empty.
func (q *Queue[T, S]) Front() *T {
	return &q.buf[q.start]
}

// Back returns a pointer to the back element.
// The result is unspecified if the queue is empty.
func (q *Queue[T, S]) Back() *T {
	return &q.buf[(q.stop-1)&q.mask]
}

// PeekFront returns the front element, or false if the queue is empty.
func (q *Queue[T, S]) PeekFront() (elem T, ok bool) {
	if q.start == q.stop {
		return
	}
	return q.buf[q.start], true
}

// PeekBack returns the back element, or false if the queue is empty.
func (q *Queue[T, S]) PeekBack() (elem T, ok bool) {
	if q.start == q.stop {
		return
	}
	return q.buf[(q.stop-1)&q.mask], true
}

// At returns a pointer to the i-th element counted from the front.
// Panics if i is out of range.
func (q *Queue[T, S]) At(i int) *T {
	if i < 0 || i >= q.Len() {
		panic("circ: index out of range")
	}
	return &q.buf[(q.start+S(i))&q.mask]
}

// Len returns the number of live elements.
func (q *Queue[T, S]) Len() int {
	return int(q.Size())
}

// Size returns the number of live elements as an index value.
func (q *Queue[T, S]) Size() S {
	return (q.stop - q.start) & q.mask
}

// Cap returns the number of elements the queue holds before it grows.
// This is the mask: one less than the number of slots in the buffer.
func (q *Queue[T, S]) Cap() int {
	return int(q.mask)
}

// Empty reports whether the queue has no live elements.
func (q *Queue[T, S]) Empty() bool {
	return q.start == q.stop
}

// Full reports whether the next push grows the buffer.
func (q *Queue[T, S]) Full() bool {
	return (q.stop+1)&q.mask == q.start
}

// Start returns the raw slot index of the front element.
func (q *Queue[T, S]) Start() S { return q.start }

// Stop returns the raw slot index one past the back element.
func (q *Queue[T, S]) Stop() S { return q.stop }

// Mask returns the index mask, one less than the buffer length.
func (q *Queue[T, S]) Mask() S { return q.mask }

// Segments returns the live elements as views into the backing buffer, in
// logical order: a holds the front part and b the part that wrapped around to
// the start of the buffer. b is empty unless the live range wraps. The views
// alias the queue and are invalidated by any push, pop or resize.
func (q *Queue[T, S]) Segments() (a, b []T) {
	return q.segments()
}

// =============================================================================
// Capacity
// =============================================================================

// Clear discards every live element, releasing them front to back if they
// implement [Releaser]. The buffer is kept.
func (q *Queue[T, S]) Clear() {
	a, b := q.segments()
	releaseAll(a)
	releaseAll(b)
	clear(a)
	clear(b)
	q.start, q.stop = 0, 0
}

// Free clears the queue and drops its buffer. The queue remains usable as a
// zero value.
func (q *Queue[T, S]) Free() {
	q.Clear()
	q.buf = nil
	q.mask = 0
}

// Resize reallocates the buffer to target slots rounded up to a power of 2
// and linearizes the live range at slot 0.
//
// Returns [ErrInvalidSize] if target is smaller than the current mask, and
// [ErrNoMemory] if the buffer cannot be allocated. On error the queue is
// unchanged. Resize never shrinks: a target at or below the current buffer
// length is a no-op.
func (q *Queue[T, S]) Resize(target S) error {
	if target < q.mask {
		return ErrInvalidSize
	}
	n, ok := planCapacity[S](uint64(target))
	if !ok {
		return ErrNoMemory
	}
	if n <= uint64(len(q.buf)) {
		return nil
	}
	return q.resize(n)
}

// Reserve grows the buffer, if necessary, so that n more elements can be
// pushed without further growth.
func (q *Queue[T, S]) Reserve(n int) error {
	if n < 0 {
		return ErrInvalidSize
	}
	need := uint64(q.Size()) + uint64(n) + 1
	c, ok := planCapacity[S](need)
	if !ok {
		return ErrNoMemory
	}
	if c <= uint64(len(q.buf)) {
		return nil
	}
	return q.resize(c)
}

// reserveOne doubles the buffer if the queue is full.
func (q *Queue[T, S]) reserveOne() error {
	if (q.stop+1)&q.mask != q.start {
		return nil
	}
	n := uint64(q.mask) + 1
	if n == 0 || n > 1<<62 || n<<1-1 > maxIndex[S]() {
		return ErrNoMemory
	}
	return q.resize(n << 1)
}

// resize moves the live range into a fresh buffer of n slots.
// Nothing in q changes until the new buffer is fully populated.
func (q *Queue[T, S]) resize(n uint64) error {
	buf, err := allocate[T](n, q.opts)
	if err != nil {
		return err
	}
	size := q.copyTo(buf)
	oldCap := q.Cap()

	q.buf = buf
	q.start = 0
	q.stop = S(size)
	q.mask = S(n - 1)
	q.opts.traceGrow(oldCap, q.Cap(), size)
	return nil
}

// =============================================================================
// Traversal
// =============================================================================

// segments returns the live range as at most two contiguous slices, front
// part first.
func (q *Queue[T, S]) segments() (a, b []T) {
	switch {
	case q.start == q.stop:
		return nil, nil
	case q.start < q.stop:
		return q.buf[q.start:q.stop], nil
	default:
		return q.buf[q.start:], q.buf[:q.stop]
	}
}

// copyTo copies the live elements in order to the front of dst.
func (q *Queue[T, S]) copyTo(dst []T) int {
	a, b := q.segments()
	n := copy(dst, a)
	return n + copy(dst[n:], b)
}

// ForEach calls fn on every live element, front to back.
func (q *Queue[T, S]) ForEach(fn func(*T)) {
	for i := q.start; i != q.stop; i = (i + 1) & q.mask {
		fn(&q.buf[i])
	}
}

// Values returns an iterator over the live elements, front to back.
func (q *Queue[T, S]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := q.start; i != q.stop; i = (i + 1) & q.mask {
			if !yield(q.buf[i]) {
				return
			}
		}
	}
}

// All returns an iterator over logical indices and element pointers,
// front to back.
func (q *Queue[T, S]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		n := 0
		for i := q.start; i != q.stop; i = (i + 1) & q.mask {
			if !yield(n, &q.buf[i]) {
				return
			}
			n++
		}
	}
}

// ToSlice returns a new slice holding the live elements in order.
// The queue is not modified.
func (q *Queue[T, S]) ToSlice() []T {
	s := make([]T, q.Len())
	q.copyTo(s)
	return s
}

// AppendTo appends the live elements in order to dst and returns the
// extended slice.
func (q *Queue[T, S]) AppendTo(dst []T) []T {
	a, b := q.segments()
	dst = slices.Grow(dst, len(a)+len(b))
	dst = append(dst, a...)
	return append(dst, b...)
}

// =============================================================================
// Ownership
// =============================================================================

// Clone returns an independent copy of q with the same buffer length and
// the same slot layout. Elements are copied by assignment.
// Returns [ErrNoMemory] if the new buffer cannot be allocated.
func (q *Queue[T, S]) Clone() (*Queue[T, S], error) {
	c := &Queue[T, S]{mask: q.mask, start: q.start, stop: q.stop, opts: q.opts}
	if q.buf == nil {
		return c, nil
	}
	buf, err := allocate[T](uint64(len(q.buf)), q.opts)
	if err != nil {
		return nil, err
	}
	if q.start <= q.stop {
		copy(buf[q.start:q.stop], q.buf[q.start:q.stop])
	} else {
		copy(buf[q.start:], q.buf[q.start:])
		copy(buf[:q.stop], q.buf[:q.stop])
	}
	c.buf = buf
	return c, nil
}

// Move transfers the buffer and cursors of q to a new queue and leaves q
// as an empty queue without a buffer. No element is copied.
func (q *Queue[T, S]) Move() *Queue[T, S] {
	m := new(Queue[T, S])
	*m = *q
	*q = Queue[T, S]{opts: m.opts}
	return m
}

// releaseAll releases each element of s in order. Value elements are
// released through their address when *T implements Releaser; otherwise each
// non-nil element implementing Releaser is released directly.
func releaseAll[T any](s []T) {
	if _, ok := any((*T)(nil)).(Releaser); ok {
		for i := range s {
			any(&s[i]).(Releaser).Release()
		}
		return
	}
	for i := range s {
		if r, ok := any(s[i]).(Releaser); ok && !isNil(r) {
			r.Release()
		}
	}
}

// isNil reports whether v holds a typed nil.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
