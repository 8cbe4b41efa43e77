package wavetable

import (
	"encoding/binary"
	"fmt"
	"math"
)

// A SampleSource yields the mono signal one sample at a time.  Bridge is the
// SampleSource used by Engine.
type SampleSource interface {
	Next() (float64, error)
}

// Render returns a device callback that fills an interleaved buffer of
// channels-wide frames, taking one sample from src per frame and writing it
// to every channel.  When src fails, fail is called once and the callback
// writes silence from then on.
func Render[T Sample](src SampleSource, channels int, fail func(error)) func(out []T) {
	if channels <= 0 {
		panic(fmt.Sprintf("wavetable.Render: %d channels", channels))
	}
	silence := FromFloat[T](0)
	failed := false
	return func(out []T) {
		for len(out) > 0 {
			frame := out[:min(channels, len(out))]
			out = out[len(frame):]
			if failed {
				fill(frame, silence)
				continue
			}
			x, err := src.Next()
			if err != nil {
				failed = true
				if fail != nil {
					fail(err)
				}
				fill(frame, silence)
				continue
			}
			WriteFrame(frame, x)
		}
	}
}

func fill[T any](s []T, x T) {
	for i := range s {
		s[i] = x
	}
}

// RenderBytes is Render for drivers that pull little-endian bytes.  It
// renders only whole frames and returns the number of bytes written.
func RenderBytes(f Format, channels int, src SampleSource, fail func(error)) (func(p []byte) int, error) {
	switch f {
	case Int8:
		return byteRenderer(Render[int8](src, channels, fail), channels, 1, func(b []byte, s int8) { b[0] = byte(s) }), nil
	case Uint8:
		return byteRenderer(Render[uint8](src, channels, fail), channels, 1, func(b []byte, s uint8) { b[0] = s }), nil
	case Int16:
		return byteRenderer(Render[int16](src, channels, fail), channels, 2, func(b []byte, s int16) { binary.LittleEndian.PutUint16(b, uint16(s)) }), nil
	case Uint16:
		return byteRenderer(Render[uint16](src, channels, fail), channels, 2, binary.LittleEndian.PutUint16), nil
	case Int32:
		return byteRenderer(Render[int32](src, channels, fail), channels, 4, func(b []byte, s int32) { binary.LittleEndian.PutUint32(b, uint32(s)) }), nil
	case Uint32:
		return byteRenderer(Render[uint32](src, channels, fail), channels, 4, binary.LittleEndian.PutUint32), nil
	case Int64:
		return byteRenderer(Render[int64](src, channels, fail), channels, 8, func(b []byte, s int64) { binary.LittleEndian.PutUint64(b, uint64(s)) }), nil
	case Uint64:
		return byteRenderer(Render[uint64](src, channels, fail), channels, 8, binary.LittleEndian.PutUint64), nil
	case Float32:
		return byteRenderer(Render[float32](src, channels, fail), channels, 4, func(b []byte, s float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(s)) }), nil
	case Float64:
		return byteRenderer(Render[float64](src, channels, fail), channels, 8, func(b []byte, s float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(s)) }), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
}

func byteRenderer[T Sample](render func([]T), channels, size int, put func([]byte, T)) func([]byte) int {
	var buf []T
	return func(p []byte) int {
		n := len(p) / (size * channels) * channels
		if cap(buf) < n {
			buf = make([]T, n)
		}
		buf = buf[:n]
		render(buf)
		for i, s := range buf {
			put(p[i*size:], s)
		}
		return n * size
	}
}
