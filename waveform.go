package wavetable

import (
	"errors"
	"fmt"
	"math"
)

// A Waveform maps a phase angle in radians to an amplitude.  It is periodic
// over 2π and defined for every real phase.
type Waveform func(phase float64) float64

var ErrUnknownWaveform = errors.New("wavetable: unknown waveform")

func Sine(phase float64) float64 { return math.Sin(phase) }

// Sawtooth ramps linearly from -1 toward +1 over one period, starting at 0
// for phase 0 and wrapping to -1 at phase π.
func Sawtooth(phase float64) float64 {
	return mod((phase+math.Pi)/math.Pi, 2) - 1
}

func Square(phase float64) float64 {
	if mod(phase, 2*math.Pi) < math.Pi {
		return 1
	}
	return -1
}

func Triangle(phase float64) float64 {
	t := mod(phase/(2*math.Pi), 1)
	switch {
	case t < .25:
		return 4 * t
	case t < .75:
		return 2 - 4*t
	default:
		return 4*t - 4
	}
}

var waveforms = map[string]Waveform{
	"sine":     Sine,
	"sawtooth": Sawtooth,
	"square":   Square,
	"triangle": Triangle,
}

func LookupWaveform(name string) (Waveform, error) {
	if w, ok := waveforms[name]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWaveform, name)
}

// mod is a floored modulo; the result has the sign of m.
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}
