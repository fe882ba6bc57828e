// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"slices"

	"github.com/ik5/sndsetup/hardware"
)

// Policy holds the tunables of a negotiation. DefaultPolicy matches the
// behaviour of current drivers.
type Policy struct {
	// MaxFrequency is the highest desired frequency Initialize accepts.
	MaxFrequency int `mapstructure:"max_frequency"`

	// SkipLowestLegacyOn lists generations that cannot play the lowest
	// STE/TT rate.
	SkipLowestLegacyOn []hardware.Generation `mapstructure:"skip_lowest_legacy_on"`

	// RemapLegacyPrescale rewrites a winning STE/TT divider into a Falcon
	// divider when an emulation layer without 16-bit support is present.
	RemapLegacyPrescale bool `mapstructure:"remap_legacy_prescale"`

	// ProbeBufferSize is the size in bytes of the clock probe buffer. The
	// classification thresholds are calibrated for 8820.
	ProbeBufferSize int `mapstructure:"probe_buffer_size"`

	ProbeTiming hardware.ProbeTiming `mapstructure:"probe_timing"`
}

const (
	DefaultMaxFrequency    = 64000
	DefaultProbeBufferSize = 8820
)

func DefaultPolicy() Policy {
	return Policy{
		MaxFrequency:        DefaultMaxFrequency,
		SkipLowestLegacyOn:  []hardware.Generation{hardware.GenerationFalcon, hardware.GenerationARAnyM},
		RemapLegacyPrescale: true,
		ProbeBufferSize:     DefaultProbeBufferSize,
		ProbeTiming:         hardware.ProbeTiming{StartDelay: 2, Budget: 50},
	}
}

func (p Policy) skipsLowestLegacy(g hardware.Generation) bool {
	return slices.Contains(p.SkipLowestLegacyOn, g)
}
