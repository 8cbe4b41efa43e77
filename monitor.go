package wavetable

import (
	"context"
	"log/slog"
)

const pitchWindow = 4096

// Monitor passes its Voice through unchanged and, once per second of audio,
// logs the RMS level and estimated pitch at debug level.
type Monitor struct {
	Voice  Voice
	Logger *slog.Logger

	meter      *AmpMeter
	sampleRate float64
	window     []float64
	w          int
	seen       int
	n, period  int
}

func (m *Monitor) InitAudio(p Params) {
	m.sampleRate = p.SampleRate
	m.period = max(1, int(p.SampleRate))
	m.meter = NewAmpMeter(.1)
	m.meter.InitAudio(p)
	m.window = make([]float64, pitchWindow)
	m.w, m.seen, m.n = 0, 0, 0
	Init(m.Voice, p)
}

func (m *Monitor) Sing() float64 {
	x := m.Voice.Sing()
	if m.meter == nil {
		return x
	}
	m.meter.Add(x)
	m.window[m.w] = x
	m.w = (m.w + 1) % len(m.window)
	m.seen++
	if m.n++; m.n >= m.period {
		m.n = 0
		m.report()
	}
	return x
}

func (m *Monitor) report() {
	if m.Logger == nil || !m.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{"rms", m.meter.Amplitude()}
	if m.seen >= len(m.window) {
		x := append(append(make([]float64, 0, len(m.window)), m.window[m.w:]...), m.window[:m.w]...)
		if f, err := DominantFreq(x, m.sampleRate); err == nil {
			attrs = append(attrs, "pitch", f)
		}
	}
	m.Logger.Debug("output level", attrs...)
}
