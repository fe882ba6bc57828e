// SPDX-License-Identifier: EPL-2.0

package machine

import (
	"maps"
	"slices"

	"github.com/ik5/sndsetup/hardware"
)

// Crystal frequencies commonly fitted to the Falcon external clock inputs.
const (
	CrystalCD  = 22579200 // 44.1 kHz family
	CrystalDAT = 24576000 // 48 kHz family
)

// Profile describes the sound stack of an emulated machine.
type Profile struct {
	Name       string
	Generation hardware.Generation
	Sound      hardware.SoundFlags

	// Emulation and Shim publish the McSn and STFA tokens when set.
	Emulation *hardware.PlaybackEmulation
	Shim      *hardware.CompatShim

	// Answers of the extended status queries.
	BitDepths int
	Formats8  int
	Formats16 int

	// ExternalClocks holds the crystal in Hz on each external input, 0 when
	// nothing is connected. Only Falcons have the inputs.
	ExternalClocks [2]int

	// FrequencyBase quantizes free-running rates to FrequencyBase/n. Zero
	// means exact.
	FrequencyBase int

	NoMachineCookie bool
	NoDMAMemory     bool
	// MemoryLimit caps single allocations; zero means unlimited.
	MemoryLimit int

	Controls map[hardware.Control]int
}

const falconSound = hardware.SoundPSG | hardware.Sound8Bit | hardware.Sound16Bit |
	hardware.SoundDSP | hardware.SoundMatrix

var presets = []Profile{
	{
		Name:       "st",
		Generation: hardware.GenerationST,
		Sound:      hardware.SoundPSG,
	},
	{
		Name:       "ste",
		Generation: hardware.GenerationSTE,
		Sound:      hardware.SoundPSG | hardware.Sound8Bit,
	},
	{
		Name:       "tt",
		Generation: hardware.GenerationTT,
		Sound:      hardware.SoundPSG | hardware.Sound8Bit,
	},
	{
		Name:       "falcon",
		Generation: hardware.GenerationFalcon,
		Sound:      falconSound,
	},
	{
		Name:           "falcon-fdi",
		Generation:     hardware.GenerationFalcon,
		Sound:          falconSound,
		ExternalClocks: [2]int{CrystalCD, CrystalDAT},
	},
	{
		Name:       "milan-gsxb",
		Generation: hardware.GenerationMilan,
		Sound:      hardware.SoundPSG | hardware.Sound8Bit | hardware.Sound16Bit | hardware.SoundExtended,
		BitDepths:  hardware.Depth8 | hardware.Depth16,
		Formats8:   hardware.EncodingSigned | hardware.EncodingUnsigned,
		Formats16: hardware.EncodingSigned | hardware.EncodingUnsigned |
			hardware.EncodingBigEndian | hardware.EncodingLittleEndian,
		FrequencyBase: CrystalCD / 256,
	},
	{
		Name:       "aranym",
		Generation: hardware.GenerationARAnyM,
		Sound:      falconSound,
	},
	{
		Name:       "macsound",
		Generation: hardware.GenerationST,
		Sound:      hardware.SoundPSG | hardware.Sound8Bit | hardware.Sound16Bit,
		Emulation: &hardware.PlaybackEmulation{
			Version: 0x0100,
			Size:    36,
			Play:    hardware.PlaybackFalcon,
		},
		FrequencyBase: CrystalCD / 256,
	},
	{
		Name:       "xsound",
		Generation: hardware.GenerationSTE,
		Emulation: &hardware.PlaybackEmulation{
			Version: 0x0100,
			Size:    36,
			Play:    hardware.PlaybackSTE,
		},
	},
	{
		Name:       "stfa",
		Generation: hardware.GenerationST,
		Sound:      hardware.SoundPSG | hardware.Sound8Bit | hardware.Sound16Bit,
		Shim:       &hardware.CompatShim{Version: 0x0200},
	},
}

// Preset returns a copy of the named built-in profile.
func Preset(name string) (Profile, bool) {
	i := slices.IndexFunc(presets, func(p Profile) bool { return p.Name == name })
	if i < 0 {
		return Profile{}, false
	}
	return presets[i].clone(), true
}

// Presets lists the built-in profile names.
func Presets() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

func (p Profile) clone() Profile {
	if p.Emulation != nil {
		e := *p.Emulation
		p.Emulation = &e
	}
	if p.Shim != nil {
		s := *p.Shim
		p.Shim = &s
	}
	p.Controls = maps.Clone(p.Controls)
	return p
}
