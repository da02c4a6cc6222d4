// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that pass queues between goroutines through
// a Relay. Relay orders its slot buffer with atomix operations, which Go's
// race detector cannot observe. The examples are excluded from race testing.

package circ_test

import (
	"context"
	"fmt"

	"code.hybscloud.com/circ"
)

// ExampleNewRelay demonstrates batching elements between two goroutines.
func ExampleNewRelay() {
	ctx := context.Background()
	r := circ.NewRelay[int, uint](4)

	go func() {
		defer r.Close()
		batch, _ := circ.NewDeque[int](3)
		for i := 1; i <= 9; i++ {
			batch.PushBack(i)
			if batch.Len() == 3 {
				r.SendWait(ctx, batch) // batch is empty again
			}
		}
	}()

	for {
		batch, err := r.RecvWait(ctx)
		if err != nil {
			break // ErrClosed once drained
		}
		sum := 0
		batch.ForEach(func(p *int) { sum += *p })
		fmt.Println(batch.ToSlice(), "sum", sum)
	}

	// Output:
	// [1 2 3] sum 6
	// [4 5 6] sum 15
	// [7 8 9] sum 24
}
