// SPDX-License-Identifier: EPL-2.0

// Package audio negotiates a static playback configuration with a sound
// subsystem and applies it.
//
// The pipeline runs once per session:
//   - capability discovery from the feature registry and status registers
//   - external clock detection on machines with two clock inputs
//   - format negotiation (Negotiate)
//   - frequency selection (SelectFrequency) or a direct rate request on
//     free-running hardware
//   - programming of mode, format, matrix and block size
//
// # Sessions
//
// Initialize locks the hardware and returns a Session on success:
//
//	desired := audio.AudioSpec{
//	    Frequency: 44100,
//	    Channels:  2,
//	    Format:    audio.FormatSigned16MSB,
//	    Samples:   1024,
//	}
//	s, err := audio.Initialize(hw, features, desired)
//	if err != nil {
//	    // the hardware is back in its previous state
//	}
//	defer s.Deinitialize()
//
//	obtained := s.Obtained()
//
// A failed Initialize never leaves the hardware partially configured: every
// register saved after locking is written back and the lock is released
// before the error is returned.
//
// # Format Negotiation
//
// Negotiate is a pure function over a FormatSet. It prefers, in order, the
// exact format, the other signedness, the other byte order, any 16-bit
// format, an 8-bit format of the same signedness and finally anything.
//
//	f, err := audio.Negotiate(audio.FormatSigned16LSB,
//	    audio.NewFormatSet(audio.FormatUnsigned16LSB))
//	// f == audio.FormatUnsigned16LSB
//
// # Frequency Selection
//
// Hardware without a free-running rate generator is limited to
// FrequencyTable. SelectFrequency returns the nearest entry the machine can
// produce; external clock rates are only eligible when a matching clock was
// detected.
//
// # Error Handling
//
// Errors wrap one of ErrValidation, ErrUnavailable,
// ErrUnsupportedConfiguration or ErrResource:
//
//	if errors.Is(err, audio.ErrUnavailable) {
//	    // another program owns the sound hardware
//	}
//
// # Probing Media
//
// A Registry maps file extensions to Probers that derive a desired spec from
// a media header; see the formats subpackages.
package audio
