package wavetable

import (
	"iter"
	"math"
)

// An Osc is a phase accumulator over a Table.  Each step reads the entry at
// the integer part of the index (no interpolation) and then advances the
// index by freq·Cap/sampleRate, wrapping modulo Cap.
type Osc struct {
	table      *Table
	freq       float64
	sampleRate float64
	index      float64
}

func (o *Osc) InitAudio(p Params) { o.sampleRate = p.SampleRate }

func (o *Osc) SetFreq(freq float64) { o.freq = freq }
func (o *Osc) Freq() float64        { return o.freq }
func (o *Osc) SampleRate() float64  { return o.sampleRate }
func (o *Osc) Index() float64       { return o.index }

// Sing returns the next sample.
func (o *Osc) Sing() float64 {
	x := o.table.samples[int(o.index)]
	n := float64(len(o.table.samples))
	o.index = math.Mod(o.index+o.freq*n/o.sampleRate, n)
	if math.IsNaN(o.index) {
		// An increment too large to represent restarts the phase.
		o.index = 0
	}
	return x
}

// Samples yields Sing forever.  It shares state with o.
func (o *Osc) Samples() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for yield(o.Sing()) {
		}
	}
}
