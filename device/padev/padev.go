// Package padev plays through the default portaudio output device.
package padev

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/gordonklaus/wavetable"
)

func Initialize() error { return portaudio.Initialize() }
func Terminate() error  { return portaudio.Terminate() }

// Device is the default portaudio output.  Zero fields are negotiated: up to
// two channels, the device's default sample rate, float32 samples, and a
// host-chosen buffer size.
type Device struct {
	Channels        int
	SampleRate      float64
	Format          wavetable.Format
	FramesPerBuffer int
}

func (d *Device) Config() (wavetable.Config, error) {
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return wavetable.Config{}, err
	}
	cfg := wavetable.Config{Channels: d.Channels, SampleRate: d.SampleRate, Format: d.Format}
	if cfg.Channels == 0 {
		cfg.Channels = min(info.MaxOutputChannels, 2)
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = info.DefaultSampleRate
	}
	if cfg.Format == 0 {
		cfg.Format = wavetable.Float32
	}
	return cfg, nil
}

func (d *Device) Open(cfg wavetable.Config, src wavetable.SampleSource, fail func(error)) (wavetable.Stream, error) {
	callback, err := newCallback(cfg, src, fail)
	if err != nil {
		return nil, err
	}
	info, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, err
	}
	p := portaudio.HighLatencyParameters(nil, info)
	p.Output.Channels = cfg.Channels
	p.SampleRate = cfg.SampleRate
	p.FramesPerBuffer = d.FramesPerBuffer
	s, err := portaudio.OpenStream(p, callback)
	if err != nil {
		return nil, err
	}
	return &stream{s: s}, nil
}

// newCallback picks the callback's buffer type, which portaudio maps to the
// stream's sample format.
func newCallback(cfg wavetable.Config, src wavetable.SampleSource, fail func(error)) (any, error) {
	switch cfg.Format {
	case wavetable.Float32:
		return wavetable.Render[float32](src, cfg.Channels, fail), nil
	case wavetable.Int32:
		return wavetable.Render[int32](src, cfg.Channels, fail), nil
	case wavetable.Int16:
		return wavetable.Render[int16](src, cfg.Channels, fail), nil
	case wavetable.Int8:
		return wavetable.Render[int8](src, cfg.Channels, fail), nil
	case wavetable.Uint8:
		return wavetable.Render[uint8](src, cfg.Channels, fail), nil
	}
	return nil, fmt.Errorf("%w: portaudio cannot play %v", wavetable.ErrUnsupportedFormat, cfg.Format)
}

type stream struct {
	s       *portaudio.Stream
	started bool
}

func (s *stream) Start() error {
	if err := s.s.Start(); err != nil {
		return err
	}
	s.started = true
	return nil
}

func (s *stream) Close() error {
	if s.started {
		if err := s.s.Stop(); err != nil {
			s.s.Close()
			return err
		}
	}
	return s.s.Close()
}
