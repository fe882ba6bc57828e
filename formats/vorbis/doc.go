// SPDX-License-Identifier: EPL-2.0

// Package vorbis probes Ogg Vorbis streams.
//
// This package uses github.com/jfreymuth/oggvorbis to read the
// identification header.
//
// # Probing
//
//	file, _ := os.Open("audio.ogg")
//	desired, err := vorbis.Prober{}.Probe(file, 1024)
//
// Vorbis decodes to floating point, so a probe asks for S16LSB at the
// stream's rate. Streams with more than two channels ask for stereo.
//
// Invalid streams return an error wrapping ErrNotVorbisFile.
package vorbis
