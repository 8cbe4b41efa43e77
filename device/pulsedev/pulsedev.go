// Package pulsedev plays through the default PulseAudio sink.
package pulsedev

import (
	"fmt"

	"github.com/jfreymuth/pulse"

	"github.com/gordonklaus/wavetable"
)

// Device is a PulseAudio playback stream on the default sink.  Zero fields
// are negotiated from the sink (mono or stereo, the sink's rate) with float32
// samples and 100ms latency.
type Device struct {
	Channels int
	Format   wavetable.Format
	Latency  float64

	client *pulse.Client
	sink   *pulse.Sink
}

func New() (*Device, error) {
	c, err := pulse.NewClient(pulse.ClientApplicationName("wavetable"))
	if err != nil {
		return nil, err
	}
	return &Device{client: c}, nil
}

func (d *Device) Close() { d.client.Close() }

func (d *Device) Config() (wavetable.Config, error) {
	sink, err := d.client.DefaultSink()
	if err != nil {
		return wavetable.Config{}, err
	}
	d.sink = sink
	return d.negotiate(len(sink.Channels()), sink.SampleRate()), nil
}

// negotiate fills zero fields from a sink with the given channel count and
// rate.
func (d *Device) negotiate(sinkChannels, sinkRate int) wavetable.Config {
	cfg := wavetable.Config{Channels: d.Channels, SampleRate: float64(sinkRate), Format: d.Format}
	if cfg.Channels == 0 {
		cfg.Channels = max(1, min(sinkChannels, 2))
	}
	if cfg.Format == 0 {
		cfg.Format = wavetable.Float32
	}
	return cfg
}

func (d *Device) Open(cfg wavetable.Config, src wavetable.SampleSource, fail func(error)) (wavetable.Stream, error) {
	opts := []pulse.PlaybackOption{pulse.PlaybackSampleRate(int(cfg.SampleRate))}
	switch cfg.Channels {
	case 1:
		opts = append(opts, pulse.PlaybackMono)
	case 2:
		opts = append(opts, pulse.PlaybackStereo)
	default:
		return nil, fmt.Errorf("pulsedev: %d channels not supported", cfg.Channels)
	}
	latency := d.Latency
	if latency == 0 {
		latency = .1
	}
	opts = append(opts, pulse.PlaybackLatency(latency))
	if d.sink != nil {
		opts = append(opts, pulse.PlaybackSink(d.sink))
	}

	var r pulse.Reader
	switch cfg.Format {
	case wavetable.Float32:
		r = pulse.Float32Reader(reader(wavetable.Render[float32](src, cfg.Channels, fail)))
	case wavetable.Int32:
		r = pulse.Int32Reader(reader(wavetable.Render[int32](src, cfg.Channels, fail)))
	case wavetable.Int16:
		r = pulse.Int16Reader(reader(wavetable.Render[int16](src, cfg.Channels, fail)))
	case wavetable.Uint8:
		r = pulse.Uint8Reader(reader(wavetable.Render[uint8](src, cfg.Channels, fail)))
	default:
		return nil, fmt.Errorf("%w: pulse cannot play %v", wavetable.ErrUnsupportedFormat, cfg.Format)
	}

	s, err := d.client.NewPlayback(r, opts...)
	if err != nil {
		return nil, err
	}
	return &stream{s}, nil
}

func reader[T wavetable.Sample](render func([]T)) func([]T) (int, error) {
	return func(out []T) (int, error) {
		render(out)
		return len(out), nil
	}
}

type stream struct {
	s *pulse.PlaybackStream
}

func (s *stream) Start() error {
	s.s.Start()
	return s.s.Error()
}

func (s *stream) Close() error {
	s.s.Stop()
	err := s.s.Error()
	s.s.Close()
	return err
}
