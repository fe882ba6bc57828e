// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"maps"
	"slices"
	"sync"
)

// Prober reads the header of a media stream and describes the output
// configuration that would play it unchanged.
type Prober interface {
	// Probe returns a desired spec with Samples set to samples.
	Probe(r io.Reader, samples int) (AudioSpec, error)
}

// Registry for probers by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	probers map[string]Prober

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		probers: make(map[string]Prober),
		mtx:     &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, p Prober) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.probers[format] = p
}

func (r *Registry) Get(format string) (Prober, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	p, ok := r.probers[format]
	return p, ok
}

// Formats returns the registered keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Sorted(maps.Keys(r.probers))
}
