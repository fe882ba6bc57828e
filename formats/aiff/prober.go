// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/sndsetup/audio"
)

const maxBitDepth = 32

// aiffInfo is the part of aiff.Decoder a probe reads, kept as an interface
// for testing.
type aiffInfo interface {
	Format() *goaudio.Format
}

// Prober reads AIFF headers. AIFF samples are signed big-endian at every
// depth.
type Prober struct{}

func (Prober) Probe(r io.Reader, samples int) (audio.AudioSpec, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return audio.AudioSpec{}, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return audio.AudioSpec{}, ErrNotAiffFile
	}

	return probe(dec, int(dec.BitDepth), samples)
}

func probe(dec aiffInfo, bitDepth, samples int) (audio.AudioSpec, error) {
	if bitDepth < 1 || bitDepth > maxBitDepth {
		return audio.AudioSpec{}, fmt.Errorf("%w: %d bits", ErrUnsupportedBitDepth, bitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return audio.AudioSpec{}, ErrUnsupportedAiffLayout
	}

	spec, err := audio.SpecFromPCM(format, bitDepth, true, true, samples)
	if err != nil {
		return audio.AudioSpec{}, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}
	return spec, nil
}
