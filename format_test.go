package wavetable

import (
	"errors"
	"math"
	"testing"
)

func roundTrip[T Sample](t *testing.T) {
	t.Helper()
	bits := FormatOf[T]().Bits()
	step := 2 / math.Ldexp(1, bits)
	for v := -1.0; v <= 1; v += 1. / 64 {
		for _, x := range []float64{v, v + 1e-3, v - 7e-4} {
			if x < -1 || x > 1 {
				continue
			}
			got := ToFloat(FromFloat[T](x))
			if d := math.Abs(got - x); d > step {
				t.Errorf("%v: %g round-trips to %g (off by %g > %g)", FormatOf[T](), x, got, d, step)
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	t.Run("i8", roundTrip[int8])
	t.Run("i16", roundTrip[int16])
	t.Run("i32", roundTrip[int32])
	t.Run("i64", roundTrip[int64])
	t.Run("u8", roundTrip[uint8])
	t.Run("u16", roundTrip[uint16])
	t.Run("u32", roundTrip[uint32])
	t.Run("u64", roundTrip[uint64])
}

func TestFromFloat(t *testing.T) {
	for _, c := range []struct {
		got, want any
	}{
		{FromFloat[int16](0), int16(0)},
		{FromFloat[int16](.5), int16(16384)},
		{FromFloat[int16](1), int16(math.MaxInt16)},
		{FromFloat[int16](-1), int16(math.MinInt16)},
		{FromFloat[int16](3), int16(math.MaxInt16)},
		{FromFloat[int8](-3), int8(math.MinInt8)},
		{FromFloat[uint8](0), uint8(128)},
		{FromFloat[uint8](-1), uint8(0)},
		{FromFloat[uint8](1), uint8(math.MaxUint8)},
		{FromFloat[uint16](0), uint16(32768)},
		{FromFloat[int64](1), int64(math.MaxInt64)},
		{FromFloat[int64](-1), int64(math.MinInt64)},
		{FromFloat[uint64](1), uint64(math.MaxUint64)},
		{FromFloat[uint64](-2), uint64(0)},
		{FromFloat[int32](math.NaN()), int32(0)},
		{FromFloat[float32](.25), float32(.25)},
		{FromFloat[float64](-1.5), -1.5},
	} {
		if c.got != c.want {
			t.Errorf("got %T %v, want %v", c.got, c.got, c.want)
		}
	}
}

func TestWriteFrame(t *testing.T) {
	frame := make([]int16, 6)
	WriteFrame(frame, -.25)
	for i, s := range frame {
		if s != -8192 {
			t.Errorf("channel %d = %d, want -8192", i, s)
		}
	}

	uframe := []uint32{1, 2, 3}
	WriteFrame(uframe, .75)
	want := FromFloat[uint32](.75)
	for i, s := range uframe {
		if s != want {
			t.Errorf("channel %d = %d, want %d", i, s, want)
		}
	}
}

func TestFormatNames(t *testing.T) {
	for f := Int8; f <= Float64; f++ {
		g, err := ParseFormat(f.String())
		if err != nil || g != f {
			t.Errorf("ParseFormat(%q) = %v, %v", f.String(), g, err)
		}
		if f.Bytes()*8 != f.Bits() || f.Bits() == 0 {
			t.Errorf("%v: %d bits, %d bytes", f, f.Bits(), f.Bytes())
		}
	}
	if _, err := ParseFormat("i24"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(i24): got %v", err)
	}
	if s := Format(0).String(); s != "Format(0)" {
		t.Errorf("Format(0).String() = %q", s)
	}
}

func TestFormatOf(t *testing.T) {
	for _, c := range []struct{ got, want Format }{
		{FormatOf[int8](), Int8},
		{FormatOf[uint16](), Uint16},
		{FormatOf[int64](), Int64},
		{FormatOf[float32](), Float32},
		{FormatOf[float64](), Float64},
	} {
		if c.got != c.want {
			t.Errorf("got %v, want %v", c.got, c.want)
		}
	}
}
