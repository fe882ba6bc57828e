// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ik5/sndsetup/audio"
)

// mockOggVorbisInfo simulates the oggvorbis.Reader for testing
type mockOggVorbisInfo struct {
	sampleRate int
	channels   int
}

func (m *mockOggVorbisInfo) SampleRate() int {
	return m.sampleRate
}

func (m *mockOggVorbisInfo) Channels() int {
	return m.channels
}

func TestProber_InvalidInput(t *testing.T) {
	t.Parallel()

	invalidData := []byte("This is not Ogg Vorbis data")

	_, err := Prober{}.Probe(bytes.NewReader(invalidData), 1024)
	if !errors.Is(err, ErrNotVorbisFile) {
		t.Errorf("Probe() error = %v, want %v", err, ErrNotVorbisFile)
	}
}

func TestProber_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Prober{}.Probe(bytes.NewReader([]byte{}), 1024)
	if err == nil {
		t.Error("Probe() error = nil, want error for empty input")
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		want       audio.AudioSpec
		wantErr    error
	}{
		{
			name: "mono", sampleRate: 22050, channels: 1,
			want: audio.AudioSpec{Frequency: 22050, Channels: 1, Format: audio.FormatSigned16LSB, Samples: 512},
		},
		{
			name: "stereo", sampleRate: 44100, channels: 2,
			want: audio.AudioSpec{Frequency: 44100, Channels: 2, Format: audio.FormatSigned16LSB, Samples: 512},
		},
		{
			name: "5.1 asks for stereo", sampleRate: 48000, channels: 6,
			want: audio.AudioSpec{Frequency: 48000, Channels: 2, Format: audio.FormatSigned16LSB, Samples: 512},
		},
		{
			name: "no channels", sampleRate: 48000,
			wantErr: ErrNotVorbisFile,
		},
		{
			name: "no rate", channels: 2,
			wantErr: ErrNotVorbisFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := probe(&mockOggVorbisInfo{sampleRate: tt.sampleRate, channels: tt.channels}, 512)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("probe() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("probe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("probe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
