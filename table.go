package wavetable

import (
	"errors"
	"math"
)

var ErrFilled = errors.New("wavetable: table already filled")

// A Table holds one period of a waveform sampled at Cap evenly spaced phases.
// Once filled it is never modified, so any number of Oscs may read it
// concurrently.
type Table struct {
	samples []float64
}

func NewTable(capacity int) *Table {
	if capacity <= 0 {
		panic("wavetable.NewTable: capacity must be positive")
	}
	return &Table{samples: make([]float64, 0, capacity)}
}

func NewFilledTable(capacity int, w Waveform) *Table {
	t := NewTable(capacity)
	t.Fill(w)
	return t
}

// Fill samples w at phases 2π·i/Cap for i in [0, Cap).  Only the first call
// has an effect; later calls return ErrFilled.
func (t *Table) Fill(w Waveform) error {
	if len(t.samples) > 0 {
		return ErrFilled
	}
	n := cap(t.samples)
	for i := 0; i < n; i++ {
		phase := 2 * math.Pi * float64(i) / float64(n)
		t.samples = append(t.samples, w(phase))
	}
	return nil
}

func (t *Table) Len() int         { return len(t.samples) }
func (t *Table) Cap() int         { return cap(t.samples) }
func (t *Table) Filled() bool     { return len(t.samples) == cap(t.samples) }
func (t *Table) At(i int) float64 { return t.samples[i] }

// Iter returns a new Osc reading t at freq Hz for a stream running at
// sampleRate Hz.
func (t *Table) Iter(freq, sampleRate float64) *Osc {
	if !t.Filled() {
		panic("wavetable.Table.Iter: table not filled")
	}
	return &Osc{table: t, freq: freq, sampleRate: sampleRate}
}
