package wavetable

import (
	"errors"
	"math"
	"testing"
)

func shouldPanic(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	f()
}

func near(t *testing.T, what string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %g, want %g ± %g", what, got, want, tol)
	}
}

func TestSineTable(t *testing.T) {
	tab := NewFilledTable(64, Sine)
	if tab.Len() != 64 {
		t.Fatalf("Len() = %d", tab.Len())
	}
	near(t, "sample[0]", tab.At(0), 0, 1e-6)
	near(t, "sample[16]", tab.At(16), 1, 1e-6)
	near(t, "sample[32]", tab.At(32), 0, 1e-6)
	near(t, "sample[48]", tab.At(48), -1, 1e-6)
}

func TestSawtoothTable(t *testing.T) {
	tab := NewFilledTable(64, Sawtooth)
	if tab.Len() != 64 {
		t.Fatalf("Len() = %d", tab.Len())
	}
	near(t, "sample[0]", tab.At(0), 0, 1e-6)
	near(t, "sample[31]", tab.At(31), 1, .05)
	near(t, "sample[32]", tab.At(32), -1, 1e-6)
	near(t, "sample[63]", tab.At(63), 0, .05)
}

func TestFillTwice(t *testing.T) {
	tab := NewTable(8)
	if tab.Filled() || tab.Len() != 0 || tab.Cap() != 8 {
		t.Fatalf("new table: len %d cap %d", tab.Len(), tab.Cap())
	}
	if err := tab.Fill(Sine); err != nil {
		t.Fatal(err)
	}
	if err := tab.Fill(Sawtooth); !errors.Is(err, ErrFilled) {
		t.Fatalf("second Fill: got %v, want ErrFilled", err)
	}
	if tab.Len() != 8 {
		t.Errorf("Len() = %d after second Fill", tab.Len())
	}
	near(t, "sample[2]", tab.At(2), 1, 1e-12)
}

func TestNewTableZero(t *testing.T) {
	shouldPanic(t, func() { NewTable(0) })
	shouldPanic(t, func() { NewTable(-3) })
}

func TestIterUnfilled(t *testing.T) {
	shouldPanic(t, func() { NewTable(4).Iter(440, 44100) })
}
