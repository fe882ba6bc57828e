// SPDX-License-Identifier: EPL-2.0

// Package wav probes and writes WAV files.
//
// It uses github.com/go-audio/wav to read RIFF/WAVE headers.
//
// # Probing
//
// Prober reads the fmt chunk of a PCM WAV stream and returns the output spec
// that would play it unchanged:
//
//	file, _ := os.Open("audio.wav")
//	desired, err := wav.Prober{}.Probe(file, 1024)
//	if err != nil {
//	    // Handle error
//	}
//	session, err := audio.Initialize(hw, features, desired)
//
// WAV stores 8-bit samples unsigned and wider samples signed little-endian,
// so a probe asks for U8 or S16LSB. Depths above 16 bits ask for 16-bit
// output and more than two channels ask for stereo.
//
// Streams that cannot seek are read into memory first.
//
// # Writing Test Tones
//
// WriteTone writes a sine in an obtained spec, which is handy for checking
// what a negotiated configuration sounds like:
//
//	out, _ := os.Create("tone.wav")
//	err := wav.WriteTone(out, session.Obtained(), 440, 44100)
//
// Only U8 and S16LSB can be written; other formats return ErrUnsupportedSpec.
// CarrierFormat names the format to write instead.
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotWavFile: The input is not a valid WAV file
//   - ErrOnlyPCMSupported: The fmt chunk is not integer PCM
//   - ErrUnsupportedWavLayout: The header lacks a rate or channel count
//   - ErrUnsupportedSpec: The spec has no WAV encoding
//
// # File Format
//
// WAV files consist of:
//   - RIFF header (12 bytes)
//   - fmt chunk (24 bytes): audio format, sample rate, channels, bit depth
//   - data chunk: actual audio samples
package wav
