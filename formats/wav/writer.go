// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ik5/sndsetup/audio"
	"github.com/ik5/sndsetup/utils"
)

const headerSize = 44

// CarrierFormat returns the format WAV stores f in: f itself when WAV can
// carry it unchanged, otherwise U8 for 8-bit and S16LSB for 16-bit data.
func CarrierFormat(f audio.AudioFormat) audio.AudioFormat {
	if f.Is16Bit() {
		return audio.FormatSigned16LSB
	}
	return audio.FormatUnsigned8
}

// WriteTone writes a PCM WAV holding frames frames of a sine at toneHz,
// encoded exactly as spec describes. Only the encodings WAV can carry
// unchanged are accepted: unsigned 8-bit and signed 16-bit little-endian.
func WriteTone(w io.Writer, spec audio.AudioSpec, toneHz float64, frames int) error {
	if spec.Format != audio.FormatUnsigned8 && spec.Format != audio.FormatSigned16LSB {
		return fmt.Errorf("%w: %v", ErrUnsupportedSpec, spec.Format)
	}
	if spec.Frequency <= 0 || spec.Channels < 1 || frames < 0 {
		return fmt.Errorf("%w: %v", ErrUnsupportedSpec, spec)
	}

	width := spec.Format.BytesPerSample()
	numChannels := uint16(spec.Channels)
	bitsPerSample := uint16(width * 8)
	blockAlign := numChannels * uint16(width)
	byteRate := uint32(spec.Frequency) * uint32(blockAlign)
	dataSize := uint32(frames) * uint32(blockAlign)

	header := make([]byte, headerSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], pcmFormat)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(spec.Frequency))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	if frames == 0 {
		return nil
	}

	// write in chunks of whole frames
	const chunkFrames = 4096
	buf := make([]byte, min(frames, chunkFrames)*int(blockAlign))

	step := 2 * math.Pi * toneHz / float64(spec.Frequency)
	for start := 0; start < frames; start += chunkFrames {
		end := min(start+chunkFrames, frames)
		chunk := buf[:(end-start)*int(blockAlign)]

		off := 0
		for i := start; i < end; i++ {
			v := math.Sin(step * float64(i))
			for range spec.Channels {
				off += utils.PutSample(chunk[off:], v, spec.Format)
			}
		}

		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
