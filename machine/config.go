// SPDX-License-Identifier: EPL-2.0

package machine

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/ik5/sndsetup/hardware"
)

// ProfileConfig is the configuration file form of a Profile. Every field
// left empty keeps the value of the Base preset.
type ProfileConfig struct {
	Name string `mapstructure:"name"`
	Base string `mapstructure:"base"`

	Generation string   `mapstructure:"generation"`
	Sound      []string `mapstructure:"sound"`

	// EmulationPlay publishes a McSn descriptor with this playback level.
	EmulationPlay *int `mapstructure:"emulation_play"`

	// STFAVersion publishes an STFA descriptor when nonzero.
	STFAVersion    int  `mapstructure:"stfa_version"`
	STFASaved16Bit bool `mapstructure:"stfa_saved_16bit"`

	BitDepths []int    `mapstructure:"bit_depths"`
	Formats8  []string `mapstructure:"formats_8bit"`
	Formats16 []string `mapstructure:"formats_16bit"`

	ExternalClocks []int `mapstructure:"external_clocks"`
	FrequencyBase  int   `mapstructure:"frequency_base"`
	NoDMAMemory    bool  `mapstructure:"no_dma_memory"`
}

var soundFlagNames = map[string]hardware.SoundFlags{
	"psg":    hardware.SoundPSG,
	"8bit":   hardware.Sound8Bit,
	"16bit":  hardware.Sound16Bit,
	"dsp":    hardware.SoundDSP,
	"matrix": hardware.SoundMatrix,
	"ext":    hardware.SoundExtended,
}

var encodingNames = map[string]int{
	"signed":   hardware.EncodingSigned,
	"unsigned": hardware.EncodingUnsigned,
	"big":      hardware.EncodingBigEndian,
	"little":   hardware.EncodingLittleEndian,
}

// DecodeProfile decodes a profile from a generic map, as produced by viper
// for one entry of the machines list.
func DecodeProfile(input any) (Profile, error) {
	var cfg ProfileConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Profile{}, fmt.Errorf("%w", err)
	}
	if err := dec.Decode(input); err != nil {
		return Profile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return cfg.Profile()
}

// Profile resolves the configuration against its base preset.
func (c ProfileConfig) Profile() (Profile, error) {
	if c.Name == "" {
		return Profile{}, fmt.Errorf("%w: missing name", ErrInvalidProfile)
	}

	var p Profile
	if c.Base != "" {
		base, ok := Preset(c.Base)
		if !ok {
			return Profile{}, fmt.Errorf("%w: base %q", ErrUnknownProfile, c.Base)
		}
		p = base
	}
	p.Name = c.Name

	if c.Generation != "" {
		g, err := hardware.ParseGeneration(c.Generation)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
		}
		p.Generation = g
	}

	if len(c.Sound) > 0 {
		p.Sound = 0
		for _, name := range c.Sound {
			f, ok := soundFlagNames[strings.ToLower(name)]
			if !ok {
				return Profile{}, fmt.Errorf("%w: sound flag %q", ErrInvalidProfile, name)
			}
			p.Sound |= f
		}
	}

	if c.EmulationPlay != nil {
		p.Emulation = &hardware.PlaybackEmulation{Version: 0x0100, Size: 36, Play: uint16(*c.EmulationPlay)}
	}
	if c.STFAVersion != 0 {
		shim := &hardware.CompatShim{Version: uint16(c.STFAVersion)}
		if c.STFASaved16Bit {
			shim.SavedSound16Bit = uint32(hardware.Sound16Bit)
		}
		p.Shim = shim
	}

	if len(c.BitDepths) > 0 {
		p.BitDepths = 0
		for _, d := range c.BitDepths {
			switch d {
			case 8:
				p.BitDepths |= hardware.Depth8
			case 16:
				p.BitDepths |= hardware.Depth16
			default:
				return Profile{}, fmt.Errorf("%w: bit depth %d", ErrInvalidProfile, d)
			}
		}
	}

	var err error
	if p.Formats8, err = encodingBits(c.Formats8, p.Formats8); err != nil {
		return Profile{}, err
	}
	if p.Formats16, err = encodingBits(c.Formats16, p.Formats16); err != nil {
		return Profile{}, err
	}

	if len(c.ExternalClocks) > 2 {
		return Profile{}, fmt.Errorf("%w: %d external clocks, at most 2", ErrInvalidProfile, len(c.ExternalClocks))
	}
	if len(c.ExternalClocks) > 0 {
		p.ExternalClocks = [2]int{}
		copy(p.ExternalClocks[:], c.ExternalClocks)
	}
	if c.FrequencyBase != 0 {
		p.FrequencyBase = c.FrequencyBase
	}
	if c.NoDMAMemory {
		p.NoDMAMemory = true
	}

	return p, nil
}

func encodingBits(names []string, fallback int) (int, error) {
	if len(names) == 0 {
		return fallback, nil
	}
	bits := 0
	for _, name := range names {
		b, ok := encodingNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("%w: encoding %q", ErrInvalidProfile, name)
		}
		bits |= b
	}
	return bits, nil
}
