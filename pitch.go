package wavetable

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ktye/fft"
)

// DominantFreq estimates the strongest frequency in x, a signal sampled at
// sampleRate Hz.  len(x) must be a power of two no smaller than 4.  A silent
// signal yields 0.
func DominantFreq(x []float64, sampleRate float64) (float64, error) {
	n := len(x)
	if n < 4 || n&(n-1) != 0 {
		return 0, fmt.Errorf("wavetable: pitch window of %d samples is not a power of two", n)
	}
	f, err := fft.New(n)
	if err != nil {
		return 0, fmt.Errorf("wavetable: pitch window: %w", err)
	}

	buf := make([]complex128, n)
	for i, v := range x {
		env := (1 - math.Cos(2*math.Pi*float64(i)/float64(n))) / 2
		buf[i] = complex(v*env, 0)
	}
	buf = f.Transform(buf)

	peak, mag := 0, 0.0
	for k := 1; k < n/2; k++ {
		if m := cmplx.Abs(buf[k]); m > mag {
			peak, mag = k, m
		}
	}
	if peak == 0 {
		return 0, nil
	}

	// parabolic interpolation between neighbouring bins
	a, c := cmplx.Abs(buf[peak-1]), cmplx.Abs(buf[peak+1])
	d := 0.0
	if den := a - 2*mag + c; den != 0 {
		d = (a - c) / (2 * den)
	}
	return (float64(peak) + d) * sampleRate / float64(n), nil
}
