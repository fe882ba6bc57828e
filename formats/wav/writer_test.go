// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/sndsetup/audio"
)

func TestWriteTone_Header(t *testing.T) {
	t.Parallel()

	spec := audio.AudioSpec{Frequency: 44100, Channels: 2, Format: audio.FormatSigned16LSB}
	buf := new(bytes.Buffer)

	if err := WriteTone(buf, spec, 440, 100); err != nil {
		t.Fatalf("WriteTone() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != headerSize+100*4 {
		t.Fatalf("WAV file size = %d, want %d", len(data), headerSize+100*4)
	}

	if string(data[0:4]) != "RIFF" {
		t.Errorf("RIFF marker = %q, want \"RIFF\"", string(data[0:4]))
	}
	if string(data[8:12]) != "WAVE" {
		t.Errorf("WAVE marker = %q, want \"WAVE\"", string(data[8:12]))
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 44100*4 {
		t.Errorf("byte rate = %d, want %d", got, 44100*4)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != 400 {
		t.Errorf("data size = %d, want 400", got)
	}
}

func TestWriteTone_EightBitCentre(t *testing.T) {
	t.Parallel()

	spec := audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatUnsigned8}
	buf := new(bytes.Buffer)

	if err := WriteTone(buf, spec, 1000, 8); err != nil {
		t.Fatalf("WriteTone() error = %v", err)
	}

	data := buf.Bytes()[headerSize:]
	if data[0] != 128 {
		t.Errorf("first sample = %d, want 128 (silence level)", data[0])
	}
	// 1 kHz at 8 kHz peaks on the third sample
	if data[2] < 254 {
		t.Errorf("third sample = %d, want peak", data[2])
	}
}

func TestWriteTone_ChunkBoundary(t *testing.T) {
	t.Parallel()

	spec := audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatSigned16LSB}
	frames := 4096*2 + 3
	buf := new(bytes.Buffer)

	if err := WriteTone(buf, spec, 440, frames); err != nil {
		t.Fatalf("WriteTone() error = %v", err)
	}
	if buf.Len() != headerSize+frames*2 {
		t.Errorf("WAV file size = %d, want %d", buf.Len(), headerSize+frames*2)
	}
}

func TestWriteTone_NoFrames(t *testing.T) {
	t.Parallel()

	spec := audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatSigned16LSB}
	buf := new(bytes.Buffer)

	if err := WriteTone(buf, spec, 440, 0); err != nil {
		t.Fatalf("WriteTone() error = %v", err)
	}
	if buf.Len() != headerSize {
		t.Errorf("WAV file size = %d, want %d (header only)", buf.Len(), headerSize)
	}
}

func TestWriteTone_UnsupportedSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec audio.AudioSpec
	}{
		{"signed 8-bit", audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatSigned8}},
		{"big-endian", audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatSigned16MSB}},
		{"unsigned 16-bit", audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatUnsigned16LSB}},
		{"no frequency", audio.AudioSpec{Channels: 1, Format: audio.FormatSigned16LSB}},
		{"no channels", audio.AudioSpec{Frequency: 8000, Format: audio.FormatSigned16LSB}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := WriteTone(new(bytes.Buffer), tt.spec, 440, 10)
			if !errors.Is(err, ErrUnsupportedSpec) {
				t.Errorf("WriteTone() error = %v, want %v", err, ErrUnsupportedSpec)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTone_WriteError(t *testing.T) {
	t.Parallel()

	spec := audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatSigned16LSB}
	if err := WriteTone(failingWriter{}, spec, 440, 10); err == nil {
		t.Error("WriteTone() error = nil, want write error")
	}
}

func BenchmarkWriteTone(b *testing.B) {
	spec := audio.AudioSpec{Frequency: 44100, Channels: 2, Format: audio.FormatSigned16LSB}
	buf := new(bytes.Buffer)

	for b.Loop() {
		buf.Reset()
		_ = WriteTone(buf, spec, 440, 44100)
	}
}

func TestCarrierFormat(t *testing.T) {
	t.Parallel()

	tests := map[audio.AudioFormat]audio.AudioFormat{
		audio.FormatUnsigned8:     audio.FormatUnsigned8,
		audio.FormatSigned8:       audio.FormatUnsigned8,
		audio.FormatSigned16LSB:   audio.FormatSigned16LSB,
		audio.FormatSigned16MSB:   audio.FormatSigned16LSB,
		audio.FormatUnsigned16LSB: audio.FormatSigned16LSB,
		audio.FormatUnsigned16MSB: audio.FormatSigned16LSB,
	}

	for in, want := range tests {
		got := CarrierFormat(in)
		if got != want {
			t.Errorf("CarrierFormat(%v) = %v, want %v", in, got, want)
		}

		spec := audio.AudioSpec{Frequency: 8000, Channels: 1, Format: got}
		if err := WriteTone(new(bytes.Buffer), spec, 440, 4); err != nil {
			t.Errorf("WriteTone() in carrier %v error = %v", got, err)
		}
	}
}
