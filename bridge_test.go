package wavetable

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// slowVoice records each sample it produces and sometimes dawdles.
type slowVoice struct {
	rand *rand.Rand
	n    int
	sung []float64
}

func (v *slowVoice) Sing() float64 {
	if v.rand.Intn(8) == 0 {
		time.Sleep(time.Duration(v.rand.Intn(200)) * time.Microsecond)
	}
	v.n++
	x := float64(v.n*7919%1000) / 1000
	v.sung = append(v.sung, x)
	return x
}

func TestBridgeBackpressure(t *testing.T) {
	const n = 3000
	b := NewBridge(4)
	v := &slowVoice{rand: rand.New(rand.NewSource(1))}

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error)
	go func() { served <- b.Serve(ctx, v) }()

	got := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x, err := b.Next()
		if err != nil {
			t.Fatalf("Next %d: %v", i, err)
		}
		got = append(got, x)
		if i%500 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	if err := <-served; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve returned %v", err)
	}
	if diff := cmp.Diff(v.sung, got); diff != "" {
		t.Errorf("received samples differ from sung samples (-sung +got):\n%s", diff)
	}
}

func TestBridgeServeExitReleasesRenderer(t *testing.T) {
	b := NewBridge(DefaultQueueCapacity)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := b.Serve(ctx, &Gain{Voice: NewFilledTable(4, Sine).Iter(1, 4), Level: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve returned %v", err)
	}
	if _, err := b.Next(); !errors.Is(err, ErrDisconnected) {
		t.Errorf("Next after Serve exit: got %v, want ErrDisconnected", err)
	}
}

func TestBridgeCloseStopsServe(t *testing.T) {
	b := NewBridge(1)
	served := make(chan error)
	go func() { served <- b.Serve(context.Background(), &slowVoice{rand: rand.New(rand.NewSource(2))}) }()

	if _, err := b.Next(); err != nil {
		t.Fatal(err)
	}
	b.Close()
	b.Close()
	select {
	case err := <-served:
		if !errors.Is(err, ErrDisconnected) {
			t.Errorf("Serve returned %v, want ErrDisconnected", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve still running after Close")
	}
	select {
	case <-b.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestBridgeNextBlocksUntilServed(t *testing.T) {
	b := NewBridge(DefaultQueueCapacity)
	got := make(chan float64)
	go func() {
		x, _ := b.Next()
		got <- x
	}()
	select {
	case <-got:
		t.Fatal("Next returned without a server")
	case <-time.After(20 * time.Millisecond):
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Serve(ctx, &Gain{Voice: NewFilledTable(4, Sine).Iter(1, 4), Level: 1})
	select {
	case x := <-got:
		if x != 0 {
			t.Errorf("got %g, want the first table sample", x)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Next never returned")
	}
}
