// SPDX-License-Identifier: EPL-2.0

package hardware

import "fmt"

// Tag is a four character feature token identifier, packed big-endian.
type Tag uint32

// NewTag packs the first four bytes of s. Shorter strings are space padded.
func NewTag(s string) Tag {
	var t Tag
	for i := range 4 {
		b := byte(' ')
		if i < len(s) {
			b = s[i]
		}
		t = t<<8 | Tag(b)
	}
	return t
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

var (
	TagMachine  = NewTag("_MCH")
	TagSound    = NewTag("_SND")
	TagMacSound = NewTag("McSn")
	TagSTFA     = NewTag("STFA")
)

// Generation identifies the machine family. The _MCH token carries it in its
// upper 16 bits.
type Generation int

const (
	GenerationST Generation = iota
	GenerationSTE
	GenerationTT
	GenerationFalcon
	GenerationMilan
	GenerationARAnyM
)

var generationNames = []string{"ST", "STE", "TT", "Falcon", "Milan", "ARAnyM"}

func (g Generation) String() string {
	if g >= 0 && int(g) < len(generationNames) {
		return generationNames[g]
	}
	return fmt.Sprintf("Generation(%d)", int(g))
}

// ParseGeneration is the inverse of Generation.String, case sensitive.
func ParseGeneration(s string) (Generation, error) {
	for i, n := range generationNames {
		if n == s {
			return Generation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown machine generation %q", s)
}

// MachineCookie encodes g the way _MCH stores it.
func MachineCookie(g Generation) uint32 {
	return uint32(g) << 16
}

// SoundFlags is the value of the _SND token.
type SoundFlags uint32

const (
	SoundPSG    SoundFlags = 1 << 0
	Sound8Bit   SoundFlags = 1 << 1
	Sound16Bit  SoundFlags = 1 << 2
	SoundDSP    SoundFlags = 1 << 3
	SoundMatrix SoundFlags = 1 << 4
	// SoundExtended marks the extended sound API with status queries for
	// every encoding and a direct sample rate command.
	SoundExtended SoundFlags = 1 << 5
)

func (f SoundFlags) Has(flag SoundFlags) bool { return f&flag != 0 }

// Playback levels of PlaybackEmulation.Play.
const (
	PlaybackNone   = 0
	PlaybackSTE    = 1
	PlaybackFalcon = 2
)

// PlaybackEmulation is the McSn descriptor published by MacSound and X-SOUND.
type PlaybackEmulation struct {
	Version         uint16
	Size            uint16
	Play            uint16
	Record          uint16
	DSP             uint16
	PlayInterrupt   uint16
	RecordInterrupt uint16
	ExternalClock   uint32
}

// CompatShim is the part of the STFA control structure the negotiation reads.
type CompatShim struct {
	Version uint16
	// SavedSound16Bit is the 16-bit bit of _SND as it was before STFA
	// installed itself. Zero means STFA emulates 16-bit playback.
	SavedSound16Bit uint32
}
