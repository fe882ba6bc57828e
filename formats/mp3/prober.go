// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/sndsetup/audio"
)

// go-mp3 always decodes to interleaved stereo, 16-bit little-endian
const (
	outputChannels = 2
	outputBits     = 16
)

// mp3Info is an interface for gomp3.Decoder to allow testing
type mp3Info interface {
	SampleRate() int
}

// Prober reads the first MP3 frame header.
type Prober struct{}

func (Prober) Probe(r io.Reader, samples int) (audio.AudioSpec, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return audio.AudioSpec{}, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return probe(dec, samples)
}

func probe(dec mp3Info, samples int) (audio.AudioSpec, error) {
	rate := dec.SampleRate()
	if rate < 1 {
		return audio.AudioSpec{}, fmt.Errorf("%w: sample rate %d", ErrNotMP3File, rate)
	}

	return audio.SpecFromPCM(&goaudio.Format{
		NumChannels: outputChannels,
		SampleRate:  rate,
	}, outputBits, true, false, samples)
}
