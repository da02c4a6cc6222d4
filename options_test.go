// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/circ"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// =============================================================================
// Builder API Tests
// =============================================================================

func TestBuilderAPI(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (int, error)
		wantCap int
	}{
		{
			name: "Deque",
			build: func() (int, error) {
				d, err := circ.Build[int](circ.New(7))
				if err != nil {
					return 0, err
				}
				return d.Cap(), nil
			},
			wantCap: 7,
		},
		{
			name: "Uint16",
			build: func() (int, error) {
				q, err := circ.BuildQueue[string, uint16](circ.New(1000))
				if err != nil {
					return 0, err
				}
				return q.Cap(), nil
			},
			wantCap: 1023,
		},
		{
			name: "Empty",
			build: func() (int, error) {
				q, err := circ.BuildQueue[int, uint32](circ.New(0))
				if err != nil {
					return 0, err
				}
				return q.Cap(), nil
			},
			wantCap: 0,
		},
		{
			name: "Bounded",
			build: func() (int, error) {
				d, err := circ.Build[int](circ.New(3).MaxCapacity(4))
				if err != nil {
					return 0, err
				}
				return d.Cap(), nil
			},
			wantCap: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if got != tt.wantCap {
				t.Fatalf("Cap: got %d, want %d", got, tt.wantCap)
			}
		})
	}
}

func TestBuilderPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"NegativeSize", func() { circ.New(-1) }},
		{"ZeroMaxCapacity", func() { circ.New(1).MaxCapacity(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestBuildSizeOutOfIndexRange(t *testing.T) {
	if _, err := circ.BuildQueue[int, uint8](circ.New(256)); !errors.Is(err, circ.ErrNoMemory) {
		t.Fatalf("BuildQueue[uint8](256): got %v, want ErrNoMemory", err)
	}
	if _, err := circ.Build[int](circ.New(4).MaxCapacity(4)); !errors.Is(err, circ.ErrNoMemory) {
		t.Fatalf("Build(4) bounded to 4 slots: got %v, want ErrNoMemory", err)
	}
}

// TestMaxCapacityGrowthIsAtomic checks that a refused growth leaves the
// queue, including a wrapped live range, exactly as it was.
func TestMaxCapacityGrowthIsAtomic(t *testing.T) {
	d, err := circ.Build[int](circ.New(3).MaxCapacity(4))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pushAll(t, d, 0, 1, 2)
	if _, err := d.PopFront(); err != nil {
		t.Fatalf("PopFront: %v", err)
	}
	pushAll(t, d, 3)

	start, stop := d.Start(), d.Stop()
	if _, err := d.PushBack(4); !errors.Is(err, circ.ErrNoMemory) {
		t.Fatalf("PushBack beyond MaxCapacity: got %v, want ErrNoMemory", err)
	}
	if err := d.Resize(8); !errors.Is(err, circ.ErrNoMemory) {
		t.Fatalf("Resize beyond MaxCapacity: got %v, want ErrNoMemory", err)
	}
	if err := d.Reserve(1); !errors.Is(err, circ.ErrNoMemory) {
		t.Fatalf("Reserve beyond MaxCapacity: got %v, want ErrNoMemory", err)
	}
	if _, err := d.EmplaceBack(func(p *int) { *p = 4 }); !errors.Is(err, circ.ErrNoMemory) {
		t.Fatalf("EmplaceBack beyond MaxCapacity: got %v, want ErrNoMemory", err)
	}

	if d.Start() != start || d.Stop() != stop || d.Cap() != 3 {
		t.Fatalf("state changed: start %d->%d stop %d->%d cap %d", start, d.Start(), stop, d.Stop(), d.Cap())
	}
	if diff := cmp.Diff([]int{1, 2, 3}, d.ToSlice()); diff != "" {
		t.Fatalf("content changed (-want +got):\n%s", diff)
	}

	// Clones keep the bound
	c, err := d.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if _, err := c.PushBack(4); !errors.Is(err, circ.ErrNoMemory) {
		t.Fatalf("clone PushBack beyond MaxCapacity: got %v, want ErrNoMemory", err)
	}
}

func TestOnGrow(t *testing.T) {
	var events [][2]int
	d, err := circ.Build[int](circ.New(1).OnGrow(func(oldCap, newCap int) {
		events = append(events, [2]int{oldCap, newCap})
	}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i := range 20 {
		pushAll(t, d, i)
	}
	want := [][2]int{{1, 3}, {3, 7}, {7, 15}, {15, 31}}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("growth events (-want +got):\n%s", diff)
	}

	// Moved queues keep the configuration
	m := d.Move()
	if err := m.Resize(64); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if got := events[len(events)-1]; got != [2]int{31, 63} {
		t.Fatalf("growth event after Move: got %v, want [31 63]", got)
	}
}

func TestLoggerTracesGrowth(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	d, err := circ.Build[string](circ.New(3).Logger(logger))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	pushAll(t, d, "A", "B", "C")
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("logged without growth: %d entries", len(hook.AllEntries()))
	}

	pushAll(t, d, "D")
	entries := hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("entries: got %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Level != logrus.DebugLevel {
		t.Fatalf("level: got %v, want debug", e.Level)
	}
	want := logrus.Fields{"old_capacity": 3, "new_capacity": 7, "len": 3}
	if diff := cmp.Diff(want, e.Data); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}
