// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/sndsetup/audio"
)

const pcmFormat = 1

// wavInfo is the part of wav.Decoder a probe reads, kept as an interface for
// testing.
type wavInfo interface {
	IsValidFile() bool
	Format() *goaudio.Format
}

// Prober reads RIFF/WAVE headers. 8-bit WAV data is unsigned, wider data is
// signed little-endian.
type Prober struct{}

func (Prober) Probe(r io.Reader, samples int) (audio.AudioSpec, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return audio.AudioSpec{}, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return audio.AudioSpec{}, ErrNotWavFile
	}
	if dec.WavAudioFormat != pcmFormat {
		return audio.AudioSpec{}, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	return probe(dec, int(dec.BitDepth), samples)
}

func probe(dec wavInfo, bitDepth, samples int) (audio.AudioSpec, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return audio.AudioSpec{}, ErrUnsupportedWavLayout
	}

	spec, err := audio.SpecFromPCM(format, bitDepth, bitDepth > 8, false, samples)
	if err != nil {
		return audio.AudioSpec{}, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}
	return spec, nil
}
