// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ

// Cursor is a forward-only position in a Queue that allows mutation of the
// element under it.
//
// Cursors compare by position. Equal is valid for any two cursors of the
// same queue; Compare and Less order cursors by their logical distance from
// the front, so they stay correct when the live range wraps past the end
// of the buffer.
//
// Example:
//
//	for c := q.Begin(); !c.Equal(q.End()); c = c.Next() {
//	    c.Ptr().hits++
//	}
type Cursor[T any, S Index] struct {
	q   *Queue[T, S]
	pos S
}

// ReadCursor is a forward-only read-only position in a Queue.
type ReadCursor[T any, S Index] struct {
	c Cursor[T, S]
}

// Begin returns a cursor at the front element.
func (q *Queue[T, S]) Begin() Cursor[T, S] {
	return Cursor[T, S]{q: q, pos: q.start}
}

// End returns a cursor one past the back element.
func (q *Queue[T, S]) End() Cursor[T, S] {
	return Cursor[T, S]{q: q, pos: q.stop}
}

// ReadBegin returns a read-only cursor at the front element.
func (q *Queue[T, S]) ReadBegin() ReadCursor[T, S] {
	return ReadCursor[T, S]{c: q.Begin()}
}

// ReadEnd returns a read-only cursor one past the back element.
func (q *Queue[T, S]) ReadEnd() ReadCursor[T, S] {
	return ReadCursor[T, S]{c: q.End()}
}

// Ptr returns a pointer to the element under the cursor.
func (c Cursor[T, S]) Ptr() *T {
	return &c.q.buf[c.pos]
}

// Value returns the element under the cursor.
func (c Cursor[T, S]) Value() T {
	return c.q.buf[c.pos]
}

// Set replaces the element under the cursor.
func (c Cursor[T, S]) Set(v T) {
	c.q.buf[c.pos] = v
}

// Next returns the cursor advanced by one slot, wrapping at the end of the
// buffer.
func (c Cursor[T, S]) Next() Cursor[T, S] {
	c.pos = (c.pos + 1) & c.q.mask
	return c
}

// Pos returns the raw slot index.
func (c Cursor[T, S]) Pos() S {
	return c.pos
}

// Offset returns the logical index of the cursor, 0 at the front.
func (c Cursor[T, S]) Offset() int {
	return int((c.pos - c.q.start) & c.q.mask)
}

// Equal reports whether c and o are at the same position.
func (c Cursor[T, S]) Equal(o Cursor[T, S]) bool {
	return c.pos == o.pos
}

// Compare returns -1, 0 or +1 as c is before, at or after o in logical
// order. Both cursors must belong to the same queue.
func (c Cursor[T, S]) Compare(o Cursor[T, S]) int {
	a, b := c.Offset(), o.Offset()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Less reports whether c is before o in logical order.
func (c Cursor[T, S]) Less(o Cursor[T, S]) bool {
	return c.Compare(o) < 0
}

// ReadOnly drops write access.
func (c Cursor[T, S]) ReadOnly() ReadCursor[T, S] {
	return ReadCursor[T, S]{c: c}
}

// Value returns the element under the cursor.
func (r ReadCursor[T, S]) Value() T {
	return r.c.Value()
}

// Next returns the cursor advanced by one slot, wrapping at the end of the
// buffer.
func (r ReadCursor[T, S]) Next() ReadCursor[T, S] {
	return ReadCursor[T, S]{c: r.c.Next()}
}

// Pos returns the raw slot index.
func (r ReadCursor[T, S]) Pos() S { return r.c.pos }

// Offset returns the logical index of the cursor, 0 at the front.
func (r ReadCursor[T, S]) Offset() int { return r.c.Offset() }

// Equal reports whether r and o are at the same position.
func (r ReadCursor[T, S]) Equal(o ReadCursor[T, S]) bool { return r.c.Equal(o.c) }

// Compare orders r and o logically like [Cursor.Compare].
func (r ReadCursor[T, S]) Compare(o ReadCursor[T, S]) int { return r.c.Compare(o.c) }

// Less reports whether r is before o in logical order.
func (r ReadCursor[T, S]) Less(o ReadCursor[T, S]) bool { return r.c.Less(o.c) }
