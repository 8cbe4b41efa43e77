package wavetable

import "context"

// Play runs e until ctx is done or playback ends.
func Play(ctx context.Context, e *Engine) error {
	c := PlayAsync(ctx, e)
	<-c.Done
	return c.err
}

// PlayAsync runs e in the background.
func PlayAsync(ctx context.Context, e *Engine) *PlayControl {
	ctx, cancel := context.WithCancel(ctx)
	c := &PlayControl{Done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(c.Done)
		defer cancel()
		c.err = e.Run(ctx)
	}()
	return c
}

type PlayControl struct {
	Done   chan struct{}
	cancel context.CancelFunc
	err    error
}

func (c *PlayControl) Stop() { c.cancel() }

// Err waits for playback to finish and returns its error.
func (c *PlayControl) Err() error {
	<-c.Done
	return c.err
}
