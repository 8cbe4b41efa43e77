package wavetable

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// A Format is a device's native sample representation.
type Format int

const (
	Int8 Format = iota + 1
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

var ErrUnsupportedFormat = errors.New("wavetable: unsupported sample format")

var formatNames = [...]string{
	Int8:    "i8",
	Int16:   "i16",
	Int32:   "i32",
	Int64:   "i64",
	Uint8:   "u8",
	Uint16:  "u16",
	Uint32:  "u32",
	Uint64:  "u64",
	Float32: "f32",
	Float64: "f64",
}

func (f Format) String() string {
	if f > 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) Bits() int {
	switch f {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64:
		return 64
	}
	return 0
}

// Bytes is the size of one sample.
func (f Format) Bytes() int { return f.Bits() / 8 }

func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	for f, name := range formatNames {
		if name != "" && name == s {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Sample is the set of native sample types a device may ask for.
type Sample interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

func FormatOf[T Sample]() Format {
	var s T
	switch any(s).(type) {
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	}
	return Float64
}

// FromFloat converts a nominal [-1, 1] amplitude to T.  Integer types are
// scaled by 2^(bits-1) (unsigned ones offset to their midpoint), rounded,
// and saturated at the type's range.  Out-of-range input is not an error.
func FromFloat[T Sample](x float64) T {
	var s T
	switch p := any(&s).(type) {
	case *int8:
		*p = int8(toSigned(x, 8))
	case *int16:
		*p = int16(toSigned(x, 16))
	case *int32:
		*p = int32(toSigned(x, 32))
	case *int64:
		*p = toSigned(x, 64)
	case *uint8:
		*p = uint8(toUnsigned(x, 8))
	case *uint16:
		*p = uint16(toUnsigned(x, 16))
	case *uint32:
		*p = uint32(toUnsigned(x, 32))
	case *uint64:
		*p = toUnsigned(x, 64)
	case *float32:
		*p = float32(x)
	case *float64:
		*p = x
	}
	return s
}

// ToFloat inverts FromFloat up to quantization.
func ToFloat[T Sample](s T) float64 {
	switch s := any(s).(type) {
	case int8:
		return fromSigned(int64(s), 8)
	case int16:
		return fromSigned(int64(s), 16)
	case int32:
		return fromSigned(int64(s), 32)
	case int64:
		return fromSigned(s, 64)
	case uint8:
		return fromUnsigned(uint64(s), 8)
	case uint16:
		return fromUnsigned(uint64(s), 16)
	case uint32:
		return fromUnsigned(uint64(s), 32)
	case uint64:
		return fromUnsigned(s, 64)
	case float32:
		return float64(s)
	case float64:
		return s
	}
	panic("unreachable")
}

// WriteFrame writes x into every channel of frame.
func WriteFrame[T Sample](frame []T, x float64) {
	s := FromFloat[T](x)
	for i := range frame {
		frame[i] = s
	}
}

func toSigned(x float64, bits int) int64 {
	scale := math.Ldexp(1, bits-1)
	y := math.Round(x * scale)
	switch {
	case math.IsNaN(y):
		return 0
	case y >= scale:
		return 1<<(bits-1) - 1
	case y < -scale:
		return -1 << (bits - 1)
	}
	return int64(y)
}

// toUnsigned offsets the signed conversion to the midpoint in integer
// arithmetic, which keeps 64-bit values exact.
func toUnsigned(x float64, bits int) uint64 {
	return uint64(toSigned(x, bits)) + 1<<(bits-1)
}

func fromSigned(s int64, bits int) float64 {
	return float64(s) / math.Ldexp(1, bits-1)
}

func fromUnsigned(s uint64, bits int) float64 {
	return fromSigned(int64(s-1<<(bits-1)), bits)
}
