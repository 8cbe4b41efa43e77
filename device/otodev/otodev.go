// Package otodev plays through oto, which pulls little-endian bytes from an
// io.Reader on its own goroutine.
package otodev

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/gordonklaus/wavetable"
)

// Device is an oto output.  Zero fields default to two channels at 48 kHz
// with float32 samples.  oto allows one context per process, so the context
// made by the first Open is reused and later streams must keep its config.
type Device struct {
	Channels   int
	SampleRate int
	Format     wavetable.Format
	BufferSize time.Duration

	ctx    *oto.Context
	ctxCfg wavetable.Config
}

func (d *Device) Config() (wavetable.Config, error) {
	cfg := wavetable.Config{Channels: d.Channels, SampleRate: float64(d.SampleRate), Format: d.Format}
	if cfg.Channels == 0 {
		cfg.Channels = 2
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 48000
	}
	if cfg.Format == 0 {
		cfg.Format = wavetable.Float32
	}
	if _, err := otoFormat(cfg.Format); err != nil {
		return wavetable.Config{}, err
	}
	return cfg, nil
}

func otoFormat(f wavetable.Format) (oto.Format, error) {
	switch f {
	case wavetable.Float32:
		return oto.FormatFloat32LE, nil
	case wavetable.Int16:
		return oto.FormatSignedInt16LE, nil
	case wavetable.Uint8:
		return oto.FormatUnsignedInt8, nil
	}
	return 0, fmt.Errorf("%w: oto cannot play %v", wavetable.ErrUnsupportedFormat, f)
}

func (d *Device) Open(cfg wavetable.Config, src wavetable.SampleSource, fail func(error)) (wavetable.Stream, error) {
	format, err := otoFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	render, err := wavetable.RenderBytes(cfg.Format, cfg.Channels, src, fail)
	if err != nil {
		return nil, err
	}
	if d.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   int(cfg.SampleRate),
			ChannelCount: cfg.Channels,
			Format:       format,
			BufferSize:   d.BufferSize,
		})
		if err != nil {
			return nil, err
		}
		<-ready
		d.ctx, d.ctxCfg = ctx, cfg
	} else if cfg != d.ctxCfg {
		return nil, fmt.Errorf("otodev: context already running as %v, cannot open %v", d.ctxCfg, cfg)
	}
	return &stream{player: d.ctx.NewPlayer(reader(render))}, nil
}

type reader func(p []byte) int

func (r reader) Read(p []byte) (int, error) { return r(p), nil }

type stream struct {
	player *oto.Player
}

func (s *stream) Start() error {
	s.player.Play()
	return s.player.Err()
}

func (s *stream) Close() error { return s.player.Close() }
