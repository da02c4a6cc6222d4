// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ

import "unsafe"

// Index is the unsigned integer type a Queue uses for its cursors and mask.
//
// Narrow index types shrink the queue header and bound the capacity:
// a Queue[T, uint8] never holds more than 255 elements.
type Index interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// RoundUp returns the smallest power of 2 that is >= x.
//
// The result is computed by smearing the highest set bit of x-1 into every
// lower bit, which takes log2 of the bit width of S steps:
//
//	circ.RoundUp[uint32](3)    // 4
//	circ.RoundUp[uint32](4)    // 4
//	circ.RoundUp[uint32](1000) // 1024
//
// x must be >= 1 and must not exceed the largest power of 2 representable
// by S; otherwise the result is 0. Callers rounding untrusted sizes should
// clamp them against the index range first.
func RoundUp[S Index](x S) S {
	x--
	width := uint(unsafe.Sizeof(x)) * 8
	for shift := uint(1); shift < width; shift <<= 1 {
		x |= x >> shift
	}
	return x + 1
}

// maxIndex returns the largest value representable by S.
func maxIndex[S Index]() uint64 {
	var zero S
	return uint64(^zero)
}

// planCapacity returns the backing slice length able to hold n slots,
// rounded up to a power of 2, or false if the resulting mask does not fit S.
func planCapacity[S Index](n uint64) (uint64, bool) {
	if n == 0 {
		n = 1
	}
	if n > 1<<63 {
		return 0, false
	}
	c := RoundUp(n)
	if c-1 > maxIndex[S]() {
		return 0, false
	}
	return c, true
}
