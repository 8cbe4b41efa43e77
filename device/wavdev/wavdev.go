// Package wavdev renders a fixed number of frames to a PCM WAV file.  It
// drives the render callback itself, in buffer-sized chunks on its own
// goroutine, so the engine can run without audio hardware.
package wavdev

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/gordonklaus/wavetable"
)

const pcm = 1

// Device writes Frames frames to Path, or to W if it is set.  Zero fields
// default to two channels at 44.1 kHz with 16-bit samples, rendered 512
// frames per callback.
type Device struct {
	Path string
	W    io.WriteSeeker

	Channels     int
	SampleRate   int
	Format       wavetable.Format
	Frames       int
	BufferFrames int
}

func (d *Device) Config() (wavetable.Config, error) {
	if d.Frames <= 0 {
		return wavetable.Config{}, fmt.Errorf("wavdev: %d frames to render", d.Frames)
	}
	cfg := wavetable.Config{Channels: d.Channels, SampleRate: float64(d.SampleRate), Format: d.Format}
	if cfg.Channels == 0 {
		cfg.Channels = 2
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
	if cfg.Format == 0 {
		cfg.Format = wavetable.Int16
	}
	return cfg, nil
}

func (d *Device) Open(cfg wavetable.Config, src wavetable.SampleSource, fail func(error)) (wavetable.Stream, error) {
	var pump func(n int, dst []int) []int
	switch cfg.Format {
	case wavetable.Uint8:
		pump = pumper(wavetable.Render[uint8](src, cfg.Channels, fail))
	case wavetable.Int16:
		pump = pumper(wavetable.Render[int16](src, cfg.Channels, fail))
	case wavetable.Int32:
		pump = pumper(wavetable.Render[int32](src, cfg.Channels, fail))
	default:
		return nil, fmt.Errorf("%w: wav cannot store %v", wavetable.ErrUnsupportedFormat, cfg.Format)
	}

	w, c := d.W, io.Closer(nil)
	if w == nil {
		f, err := os.Create(d.Path)
		if err != nil {
			return nil, err
		}
		w, c = f, f
	}
	bufferFrames := d.BufferFrames
	if bufferFrames <= 0 {
		bufferFrames = 512
	}
	return &stream{
		enc:          wav.NewEncoder(w, int(cfg.SampleRate), cfg.Format.Bits(), cfg.Channels, pcm),
		file:         c,
		cfg:          cfg,
		pump:         pump,
		frames:       d.Frames,
		bufferFrames: bufferFrames,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}, nil
}

func pumper[T int8 | int16 | int32 | uint8](render func([]T)) func(n int, dst []int) []int {
	var buf []T
	return func(n int, dst []int) []int {
		if cap(buf) < n {
			buf = make([]T, n)
		}
		buf = buf[:n]
		render(buf)
		dst = dst[:0]
		for _, s := range buf {
			dst = append(dst, int(s))
		}
		return dst
	}
}

type stream struct {
	enc          *wav.Encoder
	file         io.Closer
	cfg          wavetable.Config
	pump         func(n int, dst []int) []int
	frames       int
	bufferFrames int

	started bool
	stop    chan struct{}
	done    chan struct{}
	err     error
}

func (s *stream) Start() error {
	s.started = true
	go s.run()
	return nil
}

func (s *stream) run() {
	defer close(s.done)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: s.cfg.Channels, SampleRate: int(s.cfg.SampleRate)},
		SourceBitDepth: s.cfg.Format.Bits(),
	}
	for left := s.frames; left > 0; {
		select {
		case <-s.stop:
			left = 0
			continue
		default:
		}
		n := min(left, s.bufferFrames)
		buf.Data = s.pump(n*s.cfg.Channels, buf.Data)
		if err := s.enc.Write(buf); err != nil {
			s.err = err
			break
		}
		left -= n
	}
	s.finish()
}

func (s *stream) finish() {
	if err := s.enc.Close(); err != nil && s.err == nil {
		s.err = err
	}
	if s.file != nil {
		if err := s.file.Close(); err != nil && s.err == nil {
			s.err = err
		}
	}
}

func (s *stream) Done() <-chan struct{} { return s.done }

// Close stops rendering early if it is still running and finalizes the file.
func (s *stream) Close() error {
	if !s.started {
		s.finish()
		return s.err
	}
	select {
	case <-s.done:
	default:
		close(s.stop)
		<-s.done
	}
	return s.err
}
