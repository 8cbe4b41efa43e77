package wavetable

import "testing"

func TestInit(t *testing.T) {
	var i audioIniter
	shouldPanic(t, func() { Init(i, Params{}) })
	if i.inited {
		t.Error("expected not inited")
	}

	Init(&i, Params{SampleRate: 8000})
	if !i.inited || i.p.SampleRate != 8000 {
		t.Error("expected inited")
	}
}

func TestInitNested(t *testing.T) {
	tab := NewFilledTable(4, Sine)
	v := struct {
		G      Gain
		Voices []Voice
		Meter  *AmpMeter
		skip   *audioIniter
	}{
		G:      Gain{Voice: tab.Iter(1, 0), Level: 1},
		Voices: []Voice{tab.Iter(2, 0), &Gain{Voice: tab.Iter(3, 0)}},
		Meter:  NewAmpMeter(.5),
		skip:   &audioIniter{},
	}
	Init(&v, Params{SampleRate: 100, Channels: 2})

	for _, o := range []*Osc{v.G.Voice.(*Osc), v.Voices[0].(*Osc), v.Voices[1].(*Gain).Voice.(*Osc)} {
		if o.SampleRate() != 100 {
			t.Errorf("osc at %g Hz has sample rate %g", o.Freq(), o.SampleRate())
		}
	}
	if len(v.Meter.buf) != 50 {
		t.Errorf("meter window = %d samples, want 50", len(v.Meter.buf))
	}
	if v.skip.inited {
		t.Error("unexported field was inited")
	}
}

type audioIniter struct {
	inited bool
	p      Params
}

func (i *audioIniter) InitAudio(p Params) { i.inited, i.p = true, p }
