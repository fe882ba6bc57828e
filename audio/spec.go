// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"

	goaudio "github.com/go-audio/audio"
)

// AudioSpec describes an output configuration. Size is derived by the
// session and ignored on the desired side.
type AudioSpec struct {
	Frequency int         // samples per second
	Channels  int         // 1: mono, 2: stereo
	Format    AudioFormat // sample encoding
	Samples   int         // block size in samples, a power of two
	Size      int         // block size in bytes
}

// Validate checks a desired spec against the frequency ceiling.
func (s AudioSpec) Validate(maxFrequency int) error {
	switch {
	case s.Frequency <= 0 || s.Frequency > maxFrequency:
		return fmt.Errorf("%w: frequency %d not in 1..%d", ErrValidation, s.Frequency, maxFrequency)
	case s.Channels != 1 && s.Channels != 2:
		return fmt.Errorf("%w: %d channels", ErrValidation, s.Channels)
	case !s.Format.Valid():
		return fmt.Errorf("%w: format %v", ErrValidation, s.Format)
	case s.Samples <= 0:
		return fmt.Errorf("%w: block of %d samples", ErrValidation, s.Samples)
	}
	return nil
}

// BufferSize is Samples * Channels * bytes per sample.
func (s AudioSpec) BufferSize() int {
	return s.Samples * s.Channels * s.Format.BytesPerSample()
}

// Latency is the playback duration of one block.
func (s AudioSpec) Latency() time.Duration {
	if s.Frequency <= 0 {
		return 0
	}
	return time.Duration(s.Samples) * time.Second / time.Duration(s.Frequency)
}

// PCMFormat returns the go-audio view of the spec.
func (s AudioSpec) PCMFormat() *goaudio.Format {
	return &goaudio.Format{
		NumChannels: s.Channels,
		SampleRate:  s.Frequency,
	}
}

func (s AudioSpec) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %v, %d samples (%d bytes)",
		s.Frequency, s.Channels, s.Format, s.Samples, s.Size)
}

// SpecFromPCM builds a desired spec from a decoder's format. Depths above 16
// bits ask for 16-bit output; more than two channels ask for stereo.
func SpecFromPCM(f *goaudio.Format, bitDepth int, signed, bigEndian bool, samples int) (AudioSpec, error) {
	if f == nil {
		return AudioSpec{}, fmt.Errorf("%w: no PCM format", ErrValidation)
	}

	channels := f.NumChannels
	if channels > 2 {
		channels = 2
	}

	var format AudioFormat
	switch {
	case bitDepth <= 0:
		return AudioSpec{}, fmt.Errorf("%w: bit depth %d", ErrValidation, bitDepth)
	case bitDepth <= 8:
		format = FormatSigned8
	case bigEndian:
		format = FormatSigned16MSB
	default:
		format = FormatSigned16LSB
	}
	format = format.withSign(signed)

	return AudioSpec{
		Frequency: f.SampleRate,
		Channels:  channels,
		Format:    format,
		Samples:   samples,
	}, nil
}
