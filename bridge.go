package wavetable

import (
	"context"
	"errors"
	"sync"
)

const DefaultQueueCapacity = 1000

var ErrDisconnected = errors.New("wavetable: bridge disconnected")

// A Bridge connects the render callback to the control goroutine with two
// bounded queues: sample requests flow one way and samples flow back.  The
// render side waits for each sample before requesting the next, so there is
// never more than one request in flight and samples arrive in step order.
//
// Neither side times out.  A slow control goroutine stalls the render
// callback.
type Bridge struct {
	requests chan struct{}
	samples  chan float64

	done      chan struct{}
	closeOnce sync.Once
}

func NewBridge(capacity int) *Bridge {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Bridge{
		requests: make(chan struct{}, capacity),
		samples:  make(chan float64, capacity),
		done:     make(chan struct{}),
	}
}

// Next requests one sample and blocks until it arrives.  It is called from
// the render callback.
func (b *Bridge) Next() (float64, error) {
	select {
	case b.requests <- struct{}{}:
	case <-b.done:
		return 0, ErrDisconnected
	}
	select {
	case x := <-b.samples:
		return x, nil
	case <-b.done:
		return 0, ErrDisconnected
	}
}

// Serve answers each request with v.Sing() until ctx is done or the bridge is
// closed.  It closes the bridge on return so a render callback waiting in
// Next is released.
func (b *Bridge) Serve(ctx context.Context, v Voice) error {
	defer b.Close()
	for {
		select {
		case <-b.requests:
		case <-b.done:
			return ErrDisconnected
		case <-ctx.Done():
			return ctx.Err()
		}
		x := v.Sing()
		select {
		case b.samples <- x:
		case <-b.done:
			return ErrDisconnected
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *Bridge) Done() <-chan struct{} { return b.done }
