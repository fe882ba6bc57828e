// SPDX-License-Identifier: EPL-2.0

// Package mp3 probes MP3 streams.
//
// This package uses github.com/hajimehoshi/go-mp3 to read the first frame
// header.
//
// # Probing
//
//	file, _ := os.Open("audio.mp3")
//	desired, err := mp3.Prober{}.Probe(file, 1024)
//	if err != nil {
//	    // Handle error
//	}
//
// # Output Format
//
// go-mp3 decodes every stream to the same layout, so a probe always asks for:
//   - Sample format: S16LSB
//   - Channels: 2 (stereo)
//   - Sample rate: Depends on the MP3 file (typically 44.1kHz or 48kHz)
//
// Invalid streams return an error wrapping ErrNotMP3File.
package mp3
