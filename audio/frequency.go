// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/sndsetup/hardware"
)

// FrequencySetting is one fixed rate and the wiring that produces it.
type FrequencySetting struct {
	Rate     int
	Clock    hardware.Clock
	Prescale hardware.Prescale
	// LegacyPrescale is the LegacyPrescale register value when Prescale is
	// PrescaleOld, -1 otherwise.
	LegacyPrescale int
	Family         ClockFamily
}

// FrequencyTable lists every fixed rate in preference order: STE/TT, Falcon,
// CD rates on an external 22.5792 MHz clock, DAT rates on an external
// 24.576 MHz clock.
var FrequencyTable = []FrequencySetting{
	{50066, hardware.ClockInternal25M, hardware.PrescaleOld, hardware.Pre160, ClockInternal},
	{25033, hardware.ClockInternal25M, hardware.PrescaleOld, hardware.Pre320, ClockInternal},
	{12517, hardware.ClockInternal25M, hardware.PrescaleOld, hardware.Pre640, ClockInternal},
	{6258, hardware.ClockInternal25M, hardware.PrescaleOld, hardware.Pre1280, ClockInternal},

	{49170, hardware.ClockInternal25M, hardware.Prescale50K, -1, ClockInternal},
	{32780, hardware.ClockInternal25M, hardware.Prescale33K, -1, ClockInternal},
	{24585, hardware.ClockInternal25M, hardware.Prescale25K, -1, ClockInternal},
	{19668, hardware.ClockInternal25M, hardware.Prescale20K, -1, ClockInternal},
	{16390, hardware.ClockInternal25M, hardware.Prescale16K, -1, ClockInternal},
	{12292, hardware.ClockInternal25M, hardware.Prescale12K, -1, ClockInternal},
	{9834, hardware.ClockInternal25M, hardware.Prescale10K, -1, ClockInternal},
	{8195, hardware.ClockInternal25M, hardware.Prescale8K, -1, ClockInternal},

	{44100, hardware.ClockExternal, hardware.Prescale50K, -1, Clock44k1},
	{29400, hardware.ClockExternal, hardware.Prescale33K, -1, Clock44k1},
	{22050, hardware.ClockExternal, hardware.Prescale25K, -1, Clock44k1},
	{17640, hardware.ClockExternal, hardware.Prescale20K, -1, Clock44k1},
	{14700, hardware.ClockExternal, hardware.Prescale16K, -1, Clock44k1},
	{11025, hardware.ClockExternal, hardware.Prescale12K, -1, Clock44k1},
	{8820, hardware.ClockExternal, hardware.Prescale10K, -1, Clock44k1},
	{7350, hardware.ClockExternal, hardware.Prescale8K, -1, Clock44k1},

	{48000, hardware.ClockExternal, hardware.Prescale50K, -1, Clock48k},
	{32000, hardware.ClockExternal, hardware.Prescale33K, -1, Clock48k},
	{24000, hardware.ClockExternal, hardware.Prescale25K, -1, Clock48k},
	{19200, hardware.ClockExternal, hardware.Prescale20K, -1, Clock48k},
	{16000, hardware.ClockExternal, hardware.Prescale16K, -1, Clock48k},
	{12000, hardware.ClockExternal, hardware.Prescale12K, -1, Clock48k},
	{9600, hardware.ClockExternal, hardware.Prescale10K, -1, Clock48k},
	{8000, hardware.ClockExternal, hardware.Prescale8K, -1, Clock48k},
}

// lowestLegacyRate is the STE/TT rate some machines cannot reproduce.
const lowestLegacyRate = 6258

// legacyRemap maps STE/TT dividers to the Falcon divider closest in rate.
// Pre1280 has no Falcon equivalent and is sent as an illegal divider, which
// X-SOUND interprets as 6146 Hz.
var legacyRemap = map[int]hardware.Prescale{
	hardware.Pre160:  hardware.Prescale50K,
	hardware.Pre320:  hardware.Prescale25K,
	hardware.Pre640:  hardware.Prescale12K,
	hardware.Pre1280: hardware.PrescaleIllegal,
}

// SelectFrequency returns the table entry nearest to desired that caps can
// produce. Ties keep the entry listed first.
func SelectFrequency(desired int, table []FrequencySetting, caps Capabilities, p Policy) (FrequencySetting, error) {
	var best FrequencySetting
	found := false

	for _, fs := range table {
		if fs.Prescale != hardware.PrescaleOld && !caps.Has16Bit() {
			continue
		}
		if fs.Rate == lowestLegacyRate && fs.Prescale == hardware.PrescaleOld && p.skipsLowestLegacy(caps.Generation) {
			continue
		}
		if !caps.clockDetected(fs.Family) {
			continue
		}
		if !found || distance(fs.Rate, desired) < distance(best.Rate, desired) {
			best = fs
			found = true
		}
	}

	if !found {
		return best, fmt.Errorf("%w: no frequency near %d Hz on %v", ErrUnsupportedConfiguration, desired, caps.Generation)
	}

	// X-SOUND ignores the legacy prescale register and reads Falcon dividers
	// as STE/TT ones
	if p.RemapLegacyPrescale && caps.ExtendedEnv && best.Prescale == hardware.PrescaleOld && !caps.Has16Bit() {
		best.Prescale = legacyRemap[best.LegacyPrescale]
		best.LegacyPrescale = -1
	}

	return best, nil
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// applyFrequency programs the hardware for desired and returns the rate the
// hardware will play at.
func applyFrequency(hw hardware.Hardware, desired int, caps Capabilities, p Policy, logger *zap.SugaredLogger) (int, error) {
	if caps.HasFreeFrequency {
		err := hw.Connect(hardware.Connection{
			Source:      hardware.SourceDMAPlay,
			Destination: hardware.DestDAC,
			Clock:       hardware.ClockInternal25M,
			Prescale:    hardware.PrescaleOld,
		})
		if err != nil {
			return 0, fmt.Errorf("connect DMA playback: %w", err)
		}
		rate, err := hw.RequestFrequency(desired)
		if err != nil {
			return 0, fmt.Errorf("request %d Hz: %w", desired, err)
		}
		if rate <= 0 {
			return 0, fmt.Errorf("%w: hardware settled on %d Hz", ErrUnsupportedConfiguration, rate)
		}
		logger.Debugw("Free running frequency", "desired", desired, "obtained", rate)
		return rate, nil
	}

	fs, err := SelectFrequency(desired, FrequencyTable, caps, p)
	if err != nil {
		return 0, err
	}
	logger.Debugw("Fixed frequency selected",
		"desired", desired, "obtained", fs.Rate, "clock", fs.Clock, "prescale", int(fs.Prescale), "family", fs.Family)

	if fs.Family != ClockInternal {
		pins := hardware.PinsInput1
		if fs.Family != caps.ExternalClocks[0] {
			pins = hardware.PinsInput2
		}
		if err := hw.SetPins(pins); err != nil {
			return 0, fmt.Errorf("select external clock: %w", err)
		}
	}

	err = hw.Connect(hardware.Connection{
		Source:      hardware.SourceDMAPlay,
		Destination: hardware.DestDAC,
		Clock:       fs.Clock,
		Prescale:    fs.Prescale,
	})
	if err != nil {
		return 0, fmt.Errorf("connect DMA playback: %w", err)
	}

	// the Falcon ADC has to follow the DAC onto an external clock
	if caps.Generation == hardware.GenerationFalcon && fs.Clock == hardware.ClockExternal {
		err := hw.Connect(hardware.Connection{
			Source:   hardware.SourceADC,
			Clock:    hardware.ClockExternal,
			Prescale: fs.Prescale,
		})
		if err != nil {
			return 0, fmt.Errorf("connect ADC: %w", err)
		}
	}

	if fs.Prescale == hardware.PrescaleOld {
		if err := hw.SetControl(hardware.LegacyPrescale, fs.LegacyPrescale); err != nil {
			return 0, fmt.Errorf("set legacy prescale: %w", err)
		}
	}

	return fs.Rate, nil
}
