// Command wavetable plays a single wavetable oscillator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gordonklaus/wavetable"
	"github.com/gordonklaus/wavetable/device/otodev"
	"github.com/gordonklaus/wavetable/device/padev"
	"github.com/gordonklaus/wavetable/device/pulsedev"
	"github.com/gordonklaus/wavetable/device/wavdev"
)

var (
	device   = flag.String("device", "portaudio", "output device: portaudio, oto, pulse or wav")
	waveform = flag.String("waveform", "sawtooth", "waveform: sine, sawtooth, square or triangle")
	freq     = flag.Float64("freq", 220, "oscillator frequency in Hz")
	gain     = flag.Float64("gain", wavetable.DefaultGain, "output gain")
	table    = flag.Int("table", 64, "wavetable size")
	queue    = flag.Int("queue", wavetable.DefaultQueueCapacity, "bridge queue capacity")
	format   = flag.String("format", "", "sample format (i8 i16 i32 u8 f32 ...); empty lets the device choose")
	rate     = flag.Int("rate", 0, "sample rate in Hz; 0 lets the device choose")
	channels = flag.Int("channels", 0, "output channels; 0 lets the device choose")
	out      = flag.String("out", "wavetable.wav", "output file for -device wav")
	duration = flag.Duration("duration", 2*time.Second, "length of the file for -device wav")
	logLevel = flag.String("log-level", "info", "log level: debug, info, warn or error")
)

func main() {
	flag.Parse()

	logger, err := wavetable.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("wavetable", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	var f wavetable.Format
	if *format != "" {
		var err error
		if f, err = wavetable.ParseFormat(*format); err != nil {
			return err
		}
	}

	dev, cleanup, err := openDevice(f)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := wavetable.DefaultOptions()
	opts.Waveform = *waveform
	opts.Freq = *freq
	opts.Gain = *gain
	opts.TableSize = *table
	opts.QueueCapacity = *queue
	opts.Logger = logger
	e, err := wavetable.NewEngine(dev, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return wavetable.Play(ctx, e)
}

func openDevice(f wavetable.Format) (wavetable.Device, func(), error) {
	switch *device {
	case "portaudio":
		if err := padev.Initialize(); err != nil {
			return nil, nil, err
		}
		d := &padev.Device{Channels: *channels, SampleRate: float64(*rate), Format: f}
		return d, func() { padev.Terminate() }, nil
	case "oto":
		return &otodev.Device{Channels: *channels, SampleRate: *rate, Format: f}, func() {}, nil
	case "pulse":
		d, err := pulsedev.New()
		if err != nil {
			return nil, nil, err
		}
		d.Channels, d.Format = *channels, f
		return d, d.Close, nil
	case "wav":
		sampleRate := *rate
		if sampleRate == 0 {
			sampleRate = 44100
		}
		d := &wavdev.Device{
			Path:       *out,
			Channels:   *channels,
			SampleRate: sampleRate,
			Format:     f,
			Frames:     int(duration.Seconds() * float64(sampleRate)),
		}
		return d, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown device %q", *device)
}
