// SPDX-License-Identifier: EPL-2.0

// Package aiff probes AIFF (Audio Interchange File Format) headers.
//
// This package uses github.com/go-audio/aiff to read the COMM chunk.
//
// # Probing
//
//	file, _ := os.Open("audio.aif")
//	desired, err := aiff.Prober{}.Probe(file, 1024)
//	if err != nil {
//	    // Handle error
//	}
//
// AIFF samples are signed big-endian at every depth, so an 8-bit file asks
// for S8 and anything wider asks for S16MSB. Those are the native formats of
// the Falcon and TT, which makes AIFF the cheapest input on that hardware.
//
// # Error Handling
//
// The package defines several error types:
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: The sample size is outside 1..32 bits
//   - ErrUnsupportedAiffLayout: The header lacks a rate or channel count
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores 8-bit samples signed (WAV stores them unsigned)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
//
// # File Extensions
//
// AIFF files typically use .aif or .aiff.
package aiff
