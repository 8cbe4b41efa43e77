package wavetable

import (
	"fmt"
	"reflect"
)

// An Initer is told the stream parameters once the device has negotiated
// them, before it produces any samples.
type Initer interface {
	InitAudio(Params)
}

type Params struct {
	SampleRate float64
	Channels   int
}

func (p *Params) InitAudio(q Params) { *p = q }

func (c Config) Params() Params {
	return Params{SampleRate: c.SampleRate, Channels: c.Channels}
}

// Init calls InitAudio on x if it is an Initer, otherwise on every Initer
// reachable through x's struct fields and slice elements.  Traversal stops at
// the first Initer on each path.
func Init(x any, p Params) {
	if err := initValue(reflect.ValueOf(x), p); err != nil {
		panic("wavetable.Init: " + err.Error())
	}
}

var initerType = reflect.TypeFor[Initer]()

func initValue(v reflect.Value, p Params) error {
	if !v.IsValid() || v.Kind() == reflect.Pointer && v.IsNil() || !v.CanInterface() {
		return nil
	}
	if v.Kind() == reflect.Interface {
		return initValue(v.Elem(), p)
	}
	if v.Kind() != reflect.Pointer && v.CanAddr() {
		v = v.Addr()
	}
	if i, ok := v.Interface().(Initer); ok {
		i.InitAudio(p)
		return nil
	}
	if t := v.Type(); t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(initerType) {
		return fmt.Errorf("%s is not addressable but *%s implements Initer", t, t)
	}

	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := initValue(v.Field(i), p); err != nil {
				return fmt.Errorf("%w\n\tfield %s of %s", err, v.Type().Field(i).Name, v.Type())
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := initValue(v.Index(i), p); err != nil {
				return fmt.Errorf("%w\n\telement %d of %s", err, i, v.Type())
			}
		}
	}
	return nil
}
