// SPDX-License-Identifier: EPL-2.0

// Package sndsetup opens and closes a sound output on machines of the Atari
// family and their emulators.
//
// The negotiation itself lives in the audio subpackage. This package wraps
// it in a two-call driver surface that reports success as a bool, the way
// the sound drivers of a media library expect it.
//
// # Supported Machines
//
// Anything implementing hardware.Hardware and hardware.Features can be
// driven. The machine subpackage emulates:
//   - ST, STE and TT DMA sound with the four legacy rates
//   - Falcon matrix sound, with or without crystals on the external clock
//     inputs
//   - the extended sound API with every encoding and free-running rates
//   - the MacSound, X-SOUND and STFA emulation layers
//
// # Quick Start
//
//	driver, _, _ := sndsetup.NewMachineDriver("falcon-fdi")
//
//	desired := audio.AudioSpec{
//	    Frequency: 44100,
//	    Channels:  2,
//	    Format:    audio.FormatSigned16LSB,
//	    Samples:   1024,
//	}
//
//	obtained, ok := driver.Init(desired)
//	if !ok {
//	    log.Fatal(driver.Err())
//	}
//	defer driver.Deinit()
//
//	// obtained.Format is FormatSigned16MSB, the only 16-bit encoding a
//	// Falcon plays
//
// # Media Files
//
// The formats subpackages derive a desired spec from a file header:
//
//	f, _ := os.Open("song.ogg")
//	desired, _ := vorbis.Prober{}.Probe(f, 1024)
//	obtained, ok := driver.Init(desired)
//
// WAV, AIFF, MP3 and Ogg Vorbis are supported. formats/wav can also write a
// test tone in any spec WAV can carry.
//
// # Errors
//
// A false Init leaves the hardware exactly as it was. Err wraps one of the
// audio sentinels:
//
//	if errors.Is(driver.Err(), audio.ErrUnavailable) {
//	    // locked by another program
//	}
//
// See the individual subpackages for more detailed documentation.
package sndsetup
