// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/sndsetup/audio"
)

// mockAiffInfo simulates the aiff.Decoder for testing
type mockAiffInfo struct {
	format *goaudio.Format
}

func (m *mockAiffInfo) Format() *goaudio.Format { return m.format }

// extended encodes an integer rate as an 80-bit IEEE extended float.
func extended(rate int) []byte {
	out := make([]byte, 10)
	e := bits.Len(uint(rate)) - 1
	binary.BigEndian.PutUint16(out[0:2], uint16(16383+e))
	binary.BigEndian.PutUint64(out[2:10], uint64(rate)<<(63-e))
	return out
}

// Helper function to create a minimal valid AIFF file
func createAIFFFile(sampleRate, channels, bitsPerSample, frames int) []byte {
	width := (bitsPerSample + 7) / 8
	dataSize := frames * channels * width

	comm := new(bytes.Buffer)
	binary.Write(comm, binary.BigEndian, int16(channels))
	binary.Write(comm, binary.BigEndian, uint32(frames))
	binary.Write(comm, binary.BigEndian, int16(bitsPerSample))
	comm.Write(extended(sampleRate))

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	body.WriteString("COMM")
	binary.Write(body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	binary.Write(body, binary.BigEndian, uint32(8+dataSize))
	binary.Write(body, binary.BigEndian, uint32(0)) // offset
	binary.Write(body, binary.BigEndian, uint32(0)) // block size
	body.Write(make([]byte, dataSize))

	buf := new(bytes.Buffer)
	buf.WriteString("FORM")
	binary.Write(buf, binary.BigEndian, uint32(body.Len()))
	buf.Write(body.Bytes())

	return buf.Bytes()
}

func TestProber_Probe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		bits     int
		want     audio.AudioSpec
	}{
		{
			name: "16-bit stereo", rate: 44100, channels: 2, bits: 16,
			want: audio.AudioSpec{Frequency: 44100, Channels: 2, Format: audio.FormatSigned16MSB, Samples: 1024},
		},
		{
			name: "8-bit mono", rate: 8000, channels: 1, bits: 8,
			want: audio.AudioSpec{Frequency: 8000, Channels: 1, Format: audio.FormatSigned8, Samples: 1024},
		},
		{
			name: "24-bit asks for 16-bit", rate: 48000, channels: 2, bits: 24,
			want: audio.AudioSpec{Frequency: 48000, Channels: 2, Format: audio.FormatSigned16MSB, Samples: 1024},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := createAIFFFile(tt.rate, tt.channels, tt.bits, 32)

			got, err := Prober{}.Probe(bytes.NewReader(data), 1024)
			if err != nil {
				t.Fatalf("Probe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Probe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProber_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := createAIFFFile(22050, 1, 16, 32)

	got, err := Prober{}.Probe(io.MultiReader(bytes.NewReader(data)), 256)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if got.Frequency != 22050 || got.Format != audio.FormatSigned16MSB {
		t.Errorf("Probe() = %+v, want 22050 Hz S16MSB", got)
	}
}

func TestProber_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Prober{}.Probe(bytes.NewReader([]byte("This is not AIFF data")), 1024)
	if !errors.Is(err, ErrNotAiffFile) {
		t.Errorf("Probe() error = %v, want %v", err, ErrNotAiffFile)
	}
}

func TestProber_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Prober{}.Probe(bytes.NewReader([]byte{}), 1024)
	if err == nil {
		t.Error("Probe() error = nil, want error for empty input")
	}
}

func TestProbe_Layout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   *goaudio.Format
		bitDepth int
		wantErr  error
	}{
		{"no format", nil, 16, ErrUnsupportedAiffLayout},
		{"no rate", &goaudio.Format{NumChannels: 2}, 16, ErrUnsupportedAiffLayout},
		{"zero bits", &goaudio.Format{NumChannels: 2, SampleRate: 8000}, 0, ErrUnsupportedBitDepth},
		{"64 bits", &goaudio.Format{NumChannels: 2, SampleRate: 8000}, 64, ErrUnsupportedBitDepth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := probe(&mockAiffInfo{format: tt.format}, tt.bitDepth, 1024)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("probe() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProbe_SurroundAsksForStereo(t *testing.T) {
	t.Parallel()

	got, err := probe(&mockAiffInfo{format: &goaudio.Format{NumChannels: 6, SampleRate: 48000}}, 16, 512)
	if err != nil {
		t.Fatalf("probe() error = %v", err)
	}
	if got.Channels != 2 {
		t.Errorf("Channels = %d, want 2", got.Channels)
	}
}

func TestErrors_AreErrors(t *testing.T) {
	t.Parallel()

	testErrors := []error{
		ErrNotAiffFile,
		ErrUnsupportedBitDepth,
		ErrUnsupportedAiffLayout,
	}

	for _, err := range testErrors {
		if err == nil {
			t.Error("Expected non-nil error")
		}

		if err.Error() == "" {
			t.Errorf("Error %v has empty message", err)
		}
	}
}

func TestErrors_IsComparison(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"ErrNotAiffFile matches itself", ErrNotAiffFile, ErrNotAiffFile, true},
		{"ErrNotAiffFile doesn't match ErrUnsupportedBitDepth", ErrNotAiffFile, ErrUnsupportedBitDepth, false},
		{"ErrUnsupportedBitDepth matches itself", ErrUnsupportedBitDepth, ErrUnsupportedBitDepth, true},
		{"ErrUnsupportedAiffLayout matches itself", ErrUnsupportedAiffLayout, ErrUnsupportedAiffLayout, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors.Is(tt.err, tt.target) != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, !tt.want, tt.want)
			}
		})
	}
}

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err     error
		message string
	}{
		{ErrNotAiffFile, "not an AIFF file"},
		{ErrUnsupportedBitDepth, "unsupported AIFF sample size"},
		{ErrUnsupportedAiffLayout, "unsupported AIFF layout"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if tt.err.Error() != tt.message {
				t.Errorf("Error message = %q, want %q", tt.err.Error(), tt.message)
			}
		})
	}
}

func BenchmarkProber_Probe(b *testing.B) {
	data := createAIFFFile(44100, 2, 16, 4096)

	for b.Loop() {
		_, _ = Prober{}.Probe(bytes.NewReader(data), 1024)
	}
}
