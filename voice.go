package wavetable

// A Voice produces one sample per call to Sing.  Voices are owned by the
// control goroutine and are never touched from the render callback.
type Voice interface {
	Sing() float64
}

const DefaultGain = 0.1

// Gain scales its Voice by a fixed Level.
type Gain struct {
	Voice Voice
	Level float64
}

func (g *Gain) Sing() float64 { return g.Voice.Sing() * g.Level }

// tuner applies the most recent frequency sent on freq before each step.
type tuner struct {
	Osc  *Osc
	freq <-chan float64
}

func (t *tuner) Sing() float64 {
	select {
	case f := <-t.freq:
		t.Osc.SetFreq(f)
	default:
	}
	return t.Osc.Sing()
}
