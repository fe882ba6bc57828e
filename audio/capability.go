// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/sndsetup/hardware"
)

// Capabilities is what the sound stack in front of a session can do. It does
// not change for the lifetime of the session.
type Capabilities struct {
	Generation hardware.Generation
	Sound      hardware.SoundFlags
	Formats    FormatSet

	Has8BitStereo    bool
	Has16BitMono     bool
	HasFreeFrequency bool

	// ExtendedEnv is set when a MacSound or X-SOUND descriptor was found.
	ExtendedEnv bool

	// ExternalInputs is false on machines without external clock inputs, in
	// which case ExternalClocks carries no measurement.
	ExternalInputs bool
	ExternalClocks [2]ClockFamily
}

// Has16Bit reports whether 16-bit playback, and with it the Falcon
// frequency dividers, can be used.
func (c Capabilities) Has16Bit() bool { return c.Sound.Has(hardware.Sound16Bit) }

// clockDetected reports whether family is the internal clock or was found
// on one of the external inputs.
func (c Capabilities) clockDetected(family ClockFamily) bool {
	return family == ClockInternal || family == c.ExternalClocks[0] || family == c.ExternalClocks[1]
}

// DetectGeneration reads the machine type from the feature registry. Machines
// without the token are plain STs.
func DetectGeneration(features hardware.Features) hardware.Generation {
	c, ok := features.Lookup(hardware.TagMachine)
	if !ok {
		return hardware.GenerationST
	}
	return hardware.Generation(c.Value >> 16)
}

// discoverCapabilities builds the snapshot. The hardware must already be
// locked; on Falcons it measures the external clock inputs.
func discoverCapabilities(hw hardware.Hardware, features hardware.Features, gen hardware.Generation, p Policy, logger *zap.SugaredLogger) (Capabilities, error) {
	caps := Capabilities{
		Generation:    gen,
		Has8BitStereo: true,
	}

	if gen == hardware.GenerationFalcon {
		clocks, err := detectExternalClocks(hw, p, logger)
		if err != nil {
			return caps, err
		}
		caps.ExternalInputs = true
		caps.ExternalClocks = clocks
	}

	if c, ok := features.Lookup(hardware.TagSound); ok {
		caps.Sound = hardware.SoundFlags(c.Value)
	}

	if c, ok := features.Lookup(hardware.TagMacSound); ok {
		mcsn, ok := c.Descriptor.(*hardware.PlaybackEmulation)
		if !ok || mcsn == nil {
			return caps, fmt.Errorf("%w: McSn token without descriptor", ErrUnavailable)
		}
		caps.ExtendedEnv = true
		caps.Has8BitStereo = mcsn.Play == hardware.PlaybackSTE || mcsn.Play == hardware.PlaybackFalcon

		if mcsn.Play == hardware.PlaybackFalcon {
			// MacSound emulates an external 44.1 kHz clock
			if caps.noExternalClock() {
				caps.ExternalClocks[0] = Clock44k1
			}
			caps.HasFreeFrequency = true
		}

		// X-SOUND does not publish _SND
		if caps.Sound == 0 {
			caps.Sound = hardware.SoundPSG | hardware.Sound8Bit
		}
		logger.Debugw("Playback emulation found", "play", mcsn.Play, "version", fmt.Sprintf("%#04x", mcsn.Version))
	}

	if caps.Sound == 0 {
		return caps, fmt.Errorf("%w: no sound subsystem on %v", ErrUnavailable, gen)
	}

	if c, ok := features.Lookup(hardware.TagSTFA); ok {
		if stfa, ok := c.Descriptor.(*hardware.CompatShim); ok && stfa != nil {
			if stfa.Version >= 0x0200 && stfa.SavedSound16Bit == 0 {
				logger.Debugw("16-bit playback is emulated, ignoring it", "stfa", fmt.Sprintf("%#04x", stfa.Version))
				caps.Sound &^= hardware.Sound16Bit
			}
		}
	}

	if caps.Sound.Has(hardware.SoundExtended) {
		caps.Has16BitMono = true
		caps.HasFreeFrequency = true
		if caps.noExternalClock() {
			caps.ExternalClocks = [2]ClockFamily{Clock44k1, Clock48k}
		}

		formats, err := queryFormats(hw)
		if err != nil {
			return caps, err
		}
		caps.Formats = formats
	} else {
		if caps.Sound.Has(hardware.Sound8Bit) {
			caps.Formats = caps.Formats.Add(FormatSigned8)
		}
		if caps.Sound.Has(hardware.Sound16Bit) {
			caps.Formats = caps.Formats.Add(FormatSigned16MSB)
		}
	}

	if caps.Formats.Empty() {
		return caps, fmt.Errorf("%w: %v reports no sample format", ErrUnsupportedConfiguration, gen)
	}

	return caps, nil
}

func (c Capabilities) noExternalClock() bool {
	return c.ExternalClocks[0] == ClockInternal && c.ExternalClocks[1] == ClockInternal
}

// queryFormats reads the encodings of the extended sound API.
func queryFormats(hw hardware.Controller) (FormatSet, error) {
	var set FormatSet

	depth, err := hw.Status(hardware.StatusBitDepth)
	if err != nil {
		return set, fmt.Errorf("query bit depths: %w", err)
	}

	if depth&hardware.Depth8 != 0 {
		bits, err := hw.Status(hardware.StatusFormats8)
		if err != nil {
			return set, fmt.Errorf("query 8-bit formats: %w", err)
		}
		if bits&hardware.EncodingSigned != 0 {
			set = set.Add(FormatSigned8)
		}
		if bits&hardware.EncodingUnsigned != 0 {
			set = set.Add(FormatUnsigned8)
		}
	}

	if depth&hardware.Depth16 != 0 {
		bits, err := hw.Status(hardware.StatusFormats16)
		if err != nil {
			return set, fmt.Errorf("query 16-bit formats: %w", err)
		}
		for _, sign := range []struct {
			bit    int
			signed bool
		}{{hardware.EncodingSigned, true}, {hardware.EncodingUnsigned, false}} {
			if bits&sign.bit == 0 {
				continue
			}
			if bits&hardware.EncodingBigEndian != 0 {
				set = set.Add(FormatSigned16MSB.withSign(sign.signed))
			}
			if bits&hardware.EncodingLittleEndian != 0 {
				set = set.Add(FormatSigned16LSB.withSign(sign.signed))
			}
		}
	}

	return set, nil
}
