package wavetable

import "fmt"

// Config is what an output device negotiated for a stream.
type Config struct {
	Channels   int
	SampleRate float64
	Format     Format
}

func (c Config) String() string {
	return fmt.Sprintf("%d ch, %g Hz, %v", c.Channels, c.SampleRate, c.Format)
}

func (c Config) validate() error {
	switch {
	case c.Channels <= 0:
		return fmt.Errorf("wavetable: device reported %d channels", c.Channels)
	case c.SampleRate <= 0:
		return fmt.Errorf("wavetable: device reported sample rate %g", c.SampleRate)
	case c.Format.Bits() == 0:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, c.Format)
	}
	return nil
}

// A Device is an audio output driver.  The driver decides when to invoke the
// render callback; the engine treats that cadence as opaque.
type Device interface {
	// Config negotiates the stream parameters.
	Config() (Config, error)

	// Open builds a stream whose render callback pulls from src, choosing the
	// callback's native sample type from cfg.Format once.  fail is called
	// from the render callback if src fails.
	Open(cfg Config, src SampleSource, fail func(error)) (Stream, error)
}

type Stream interface {
	Start() error
	Close() error
}

// A FiniteStream ends on its own, for example after rendering a fixed
// number of frames to a file.
type FiniteStream interface {
	Stream
	Done() <-chan struct{}
}
