package wavetable

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

var ErrInvalidFreq = errors.New("wavetable: frequency must be positive and finite")

var errStreamEnded = errors.New("wavetable: stream ended")

type Options struct {
	TableSize     int
	Waveform      string
	Freq          float64
	Gain          float64
	QueueCapacity int
	Logger        *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		TableSize:     64,
		Waveform:      "sawtooth",
		Freq:          220,
		Gain:          DefaultGain,
		QueueCapacity: DefaultQueueCapacity,
	}
}

// An Engine plays a single wavetable oscillator on a Device.  The render
// callback and the control goroutine that owns the oscillator only talk
// through a Bridge.
type Engine struct {
	dev  Device
	opts Options
	wave Waveform
	log  *slog.Logger
	freq chan float64

	mu  sync.Mutex
	cfg Config
}

func NewEngine(dev Device, opts Options) (*Engine, error) {
	if opts.TableSize <= 0 {
		return nil, fmt.Errorf("wavetable: table size %d must be positive", opts.TableSize)
	}
	if !validStep(opts.Freq, opts.TableSize) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidFreq, opts.Freq)
	}
	if opts.QueueCapacity <= 0 {
		return nil, fmt.Errorf("wavetable: queue capacity %d must be positive", opts.QueueCapacity)
	}
	wave, err := LookupWaveform(opts.Waveform)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		dev:  dev,
		opts: opts,
		wave: wave,
		log:  log,
		freq: make(chan float64, 1),
	}, nil
}

// validStep reports whether f gives a finite increment over a table of the
// given size at sample rates of 1 Hz and up.
func validStep(f float64, size int) bool {
	return f > 0 && !math.IsInf(f*float64(size), 1)
}

// SetFreq retunes the oscillator.  The control goroutine picks up the latest
// value before its next step; values set while the engine is stopped apply
// when it next runs.
func (e *Engine) SetFreq(f float64) error {
	if !validStep(f, e.opts.TableSize) {
		return fmt.Errorf("%w: %g", ErrInvalidFreq, f)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.freq:
	default:
	}
	e.freq <- f
	return nil
}

// Config returns the configuration negotiated by the last call to Run.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Run plays until ctx is done, the stream ends on its own, or the render
// callback loses the bridge.  Failing to configure, open or start the device
// is returned as an error.  Run must not be called concurrently.
func (e *Engine) Run(ctx context.Context) error {
	cfg, err := e.dev.Config()
	if err != nil {
		return fmt.Errorf("wavetable: negotiating device config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
	e.log.Info("device configured", "channels", cfg.Channels, "rate", cfg.SampleRate, "format", cfg.Format)

	table := NewFilledTable(e.opts.TableSize, e.wave)
	osc := table.Iter(e.opts.Freq, cfg.SampleRate)
	voice := &Monitor{
		Voice:  &Gain{Voice: &tuner{Osc: osc, freq: e.freq}, Level: e.opts.Gain},
		Logger: e.log,
	}
	Init(voice, cfg.Params())

	bridge := NewBridge(e.opts.QueueCapacity)
	failed := make(chan error, 1)
	fail := func(err error) {
		select {
		case failed <- err:
		default:
		}
	}
	stream, err := e.dev.Open(cfg, bridge, fail)
	if err != nil {
		return fmt.Errorf("wavetable: opening stream: %w", err)
	}
	defer func() {
		if err := stream.Close(); err != nil {
			e.log.Error("closing stream", "err", err)
		}
	}()

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return bridge.Serve(ctx, voice) })
	g.Go(func() error {
		select {
		case <-ctx.Done():
			return nil
		case err := <-failed:
			return fmt.Errorf("wavetable: render callback: %w", err)
		case <-streamDone(stream):
			return errStreamEnded
		}
	})

	if err := stream.Start(); err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("wavetable: starting stream: %w", err)
	}
	e.log.Info("stream started", "waveform", e.opts.Waveform, "freq", e.opts.Freq, "table", e.opts.TableSize)

	err = g.Wait()
	switch {
	case errors.Is(err, errStreamEnded):
		e.log.Info("stream ended")
		return nil
	case parent.Err() != nil:
		e.log.Info("stream stopped")
		return nil
	case err != nil:
		e.log.Error("stream failed", "err", err)
	}
	return err
}

func streamDone(s Stream) <-chan struct{} {
	if f, ok := s.(FiniteStream); ok {
		return f.Done()
	}
	return nil
}
