// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package circ

import "context"

// Sender is the producing end of a [Relay].
//
// Pipeline stages take a Sender or a Receiver rather than the Relay itself,
// so each stage can only act on its own end:
//
//	func stage(ctx context.Context, in circ.Receiver[Event, uint], out circ.Sender[Event, uint]) error {
//	    defer out.Close()
//	    for {
//	        batch, err := in.RecvWait(ctx)
//	        if err != nil {
//	            return err
//	        }
//	        transform(batch)
//	        if err := out.SendWait(ctx, batch); err != nil {
//	            return err
//	        }
//	    }
//	}
type Sender[T any, S Index] interface {
	// Send moves q into the relay (non-blocking).
	// Returns ErrWouldBlock if the relay is full.
	Send(q *Queue[T, S]) error

	// SendWait moves q into the relay, waiting for room until ctx is done.
	SendWait(ctx context.Context, q *Queue[T, S]) error

	// Close signals that no more queues will be sent.
	Close()
}

// Receiver is the consuming end of a [Relay].
type Receiver[T any, S Index] interface {
	// Recv removes the oldest queue (non-blocking).
	// Returns (nil, ErrWouldBlock) if the relay is empty,
	// (nil, ErrClosed) if it is empty and closed.
	Recv() (*Queue[T, S], error)

	// RecvWait removes the oldest queue, waiting until ctx is done.
	RecvWait(ctx context.Context) (*Queue[T, S], error)
}

var (
	_ Sender[int, uint]   = (*Relay[int, uint])(nil)
	_ Receiver[int, uint] = (*Relay[int, uint])(nil)
)

// pad is cache line padding to prevent false sharing.
type pad [64]byte
