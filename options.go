// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ

import (
	"github.com/sirupsen/logrus"
)

// Options configures queue creation and growth.
type Options struct {
	// Requested usable size (rounds up to 2^k-1)
	size int

	// Upper bound on backing buffer slots, 0 for none
	maxCapacity int

	// Growth observers
	logger logrus.FieldLogger
	onGrow func(oldCap, newCap int)
}

// Builder creates queues with fluent configuration.
//
// Queues built from the same Builder share nothing but configuration.
// Clones and moved-to queues keep the configuration of their source.
//
// Example:
//
//	// Deque with room for 1000 elements before the first growth
//	d, err := circ.Build[Event](circ.New(1000))
//
//	// Bounded queue with 16-bit cursors and growth tracing
//	q, err := circ.BuildQueue[Event, uint16](circ.New(64).
//	    MaxCapacity(4096).
//	    Logger(logrus.StandardLogger()))
type Builder struct {
	opts Options
}

// New creates a queue builder for the given usable size.
//
// The backing buffer holds size+1 slots rounded up to the next power of 2;
// one slot is reserved to tell a full queue from an empty one. For example,
// size=3 results in 4 slots and Cap()=3, size=4 results in 8 slots and
// Cap()=7.
//
// Panics if size < 0.
func New(size int) *Builder {
	if size < 0 {
		panic("circ: size must be >= 0")
	}
	return &Builder{opts: Options{size: size}}
}

// MaxCapacity bounds the number of slots in the backing buffer.
// Construction or growth that would exceed n fails with [ErrNoMemory]
// and leaves the queue unchanged.
//
// Panics if n < 1.
func (b *Builder) MaxCapacity(n int) *Builder {
	if n < 1 {
		panic("circ: max capacity must be >= 1")
	}
	b.opts.maxCapacity = n
	return b
}

// Logger traces every reallocation of the backing buffer at debug level.
func (b *Builder) Logger(l logrus.FieldLogger) *Builder {
	b.opts.logger = l
	return b
}

// OnGrow registers fn to be called after every reallocation of the backing
// buffer with the usable capacity before and after.
func (b *Builder) OnGrow(fn func(oldCap, newCap int)) *Builder {
	b.opts.onGrow = fn
	return b
}

// Build creates a Deque[T] from the builder configuration.
func Build[T any](b *Builder) (*Deque[T], error) {
	return BuildQueue[T, uint](b)
}

// BuildQueue creates a Queue[T, S] from the builder configuration.
// Returns [ErrNoMemory] if the requested size does not fit S or the
// buffer cannot be allocated.
func BuildQueue[T any, S Index](b *Builder) (*Queue[T, S], error) {
	opts := b.opts
	return newQueue[T, S](uint64(opts.size), &opts)
}

// limit returns the slot bound, 0 for none.
func (o *Options) limit() uint64 {
	if o == nil {
		return 0
	}
	return uint64(o.maxCapacity)
}

func (o *Options) traceGrow(oldCap, newCap, n int) {
	if o == nil {
		return
	}
	if o.onGrow != nil {
		o.onGrow(oldCap, newCap)
	}
	if o.logger != nil {
		o.logger.WithFields(logrus.Fields{
			"old_capacity": oldCap,
			"new_capacity": newCap,
			"len":          n,
		}).Debug("circ: backing buffer resized")
	}
}
