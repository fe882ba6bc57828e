// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/sndsetup/audio"
)

// oggInfo is an interface for oggvorbis.Reader to allow testing
type oggInfo interface {
	SampleRate() int
	Channels() int
}

// Prober reads the Vorbis identification header. Vorbis decodes to floats,
// so a probe asks for the widest common encoding, S16LSB.
type Prober struct{}

func (Prober) Probe(r io.Reader, samples int) (audio.AudioSpec, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return audio.AudioSpec{}, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	return probe(dec, samples)
}

func probe(dec oggInfo, samples int) (audio.AudioSpec, error) {
	if dec.SampleRate() < 1 || dec.Channels() < 1 {
		return audio.AudioSpec{}, fmt.Errorf("%w: %d Hz, %d channels",
			ErrNotVorbisFile, dec.SampleRate(), dec.Channels())
	}

	return audio.SpecFromPCM(&goaudio.Format{
		NumChannels: dec.Channels(),
		SampleRate:  dec.SampleRate(),
	}, 16, true, false, samples)
}
