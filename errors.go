// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Relay.Send: the relay is full (backpressure)
// For Relay.Recv: the relay is empty (no batch available)
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrEmpty is returned when popping from a queue with no live elements.
//
// ErrEmpty wraps [ErrWouldBlock]: an empty queue is a control flow signal,
// not a failure, and the queue is left untouched.
//
// Example:
//
//	for {
//	    v, err := q.PopFront()
//	    if circ.IsEmpty(err) {
//	        break
//	    }
//	    process(v)
//	}
var ErrEmpty = fmt.Errorf("circ: pop from empty queue: %w", iox.ErrWouldBlock)

// ErrNoMemory is returned when a backing buffer cannot be allocated: on
// construction, on growth, or on Clone. The queue is left unmodified.
var ErrNoMemory = errors.New("circ: cannot allocate backing buffer")

// ErrInvalidSize is returned for negative sizes and for a Resize target
// smaller than the current mask.
var ErrInvalidSize = errors.New("circ: invalid size")

// ErrClosed is returned by a Relay after Close.
var ErrClosed = errors.New("circ: relay closed")

// IsEmpty reports whether err is or wraps [ErrEmpty].
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmpty)
}

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support; true for
// [ErrEmpty].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
