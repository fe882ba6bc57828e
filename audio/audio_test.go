// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"strconv"
	"sync"
	"testing"
)

// mockProber reports a fixed spec.
type mockProber struct {
	spec AudioSpec
}

func (p *mockProber) Probe(_ io.Reader, samples int) (AudioSpec, error) {
	s := p.spec
	s.Samples = samples
	return s, nil
}

// failingProber always returns an error
type failingProber struct{}

func (p *failingProber) Probe(io.Reader, int) (AudioSpec, error) {
	return AudioSpec{}, errors.New("probe failed")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	prober := &mockProber{spec: cdQuality}

	registry.Register("wav", prober)

	got, ok := registry.Get("wav")
	if !ok {
		t.Fatal("Registry.Get() failed to retrieve registered prober")
	}
	if got != prober {
		t.Error("Registry.Get() returned different prober instance")
	}

	spec, err := got.Probe(nil, 256)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if spec.Samples != 256 || spec.Frequency != 44100 {
		t.Errorf("Probe() = %v", spec)
	}
}

func TestRegistry_GetNonExistent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	if _, ok := registry.Get("nonexistent"); ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", &mockProber{})
	registry.Register("wav", &failingProber{})

	p, _ := registry.Get("wav")
	if _, err := p.Probe(nil, 1); err == nil {
		t.Error("Registry.Register() did not replace the previous prober")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if got := registry.Formats(); len(got) != 0 {
		t.Errorf("Formats() = %v, want empty", got)
	}

	for _, f := range []string{"ogg", "wav", "mp3"} {
		registry.Register(f, &mockProber{})
	}

	want := []string{"mp3", "ogg", "wav"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			key := strconv.Itoa(i)
			registry.Register(key, &mockProber{})
			if _, ok := registry.Get(key); !ok {
				t.Errorf("Get(%q) missing after Register", key)
			}
			_ = registry.Formats()
		}()
	}
	wg.Wait()

	if got := len(registry.Formats()); got != 16 {
		t.Errorf("len(Formats()) = %d, want 16", got)
	}
}
