// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/sndsetup/hardware"
)

// ClockFamily is the reference a sample rate is derived from.
type ClockFamily int

const (
	// ClockInternal is the internal divider, also reported for an external
	// input with nothing (or nothing recognisable) attached.
	ClockInternal ClockFamily = iota
	Clock44k1
	Clock48k
)

func (c ClockFamily) String() string {
	switch c {
	case ClockInternal:
		return "internal"
	case Clock44k1:
		return "44.1 kHz"
	case Clock48k:
		return "48 kHz"
	}
	return fmt.Sprintf("ClockFamily(%d)", int(c))
}

// Probe tick windows, valid for an 8820 byte mono probe at 200 Hz ticks.
const (
	noExternalBelow = 35 // ticks <= 35: internal
	noExternalAbove = 42 // ticks >= 42: internal
	family48kUpTo   = 38 // 36..38: 48 kHz, 39..41: 44.1 kHz
)

// ClassifyTicks maps the elapsed ticks of a clock probe to a clock family.
func ClassifyTicks(ticks int) ClockFamily {
	switch {
	case ticks <= noExternalBelow || ticks >= noExternalAbove:
		return ClockInternal
	case ticks <= family48kUpTo:
		return Clock48k
	default:
		return Clock44k1
	}
}

// detectExternalClocks measures both external clock inputs. The result is
// indexed by input: [0] is input 1, [1] is input 2.
func detectExternalClocks(hw hardware.Hardware, p Policy, logger *zap.SugaredLogger) (clocks [2]ClockFamily, err error) {
	buf, err := hw.Alloc(p.ProbeBufferSize, hardware.RegionDMA)
	if err != nil {
		logger.Debugw("DMA memory unavailable for clock probe, falling back", "error", err)
		buf, err = hw.Alloc(p.ProbeBufferSize, hardware.RegionAny)
		if err != nil {
			return clocks, fmt.Errorf("%w: clock probe buffer of %d bytes: %w", ErrResource, p.ProbeBufferSize, err)
		}
	}
	defer func() {
		if ferr := hw.Free(buf); ferr != nil {
			err = errors.Join(err, fmt.Errorf("free clock probe buffer: %w", ferr))
		}
	}()
	clear(buf)

	if err := prepareClockProbe(hw, buf); err != nil {
		return clocks, err
	}

	// input 2 is probed first
	probes := []struct {
		input int
		pins  int
	}{
		{input: 1, pins: hardware.PinsInput2},
		{input: 0, pins: hardware.PinsInput1},
	}
	for _, probe := range probes {
		if err := hw.SetPins(probe.pins); err != nil {
			return clocks, fmt.Errorf("select external clock %d: %w", probe.input+1, err)
		}
		ticks, err := hw.MeasureClockTicks(p.ProbeTiming)
		if err != nil {
			return clocks, fmt.Errorf("measure external clock %d: %w", probe.input+1, err)
		}
		clocks[probe.input] = ClassifyTicks(ticks)
		logger.Debugw("External clock probed",
			"input", probe.input+1, "ticks", ticks, "family", clocks[probe.input])
	}

	return clocks, nil
}

func prepareClockProbe(hw hardware.Hardware, buf []byte) error {
	if err := hw.Reset(); err != nil {
		return fmt.Errorf("reset before clock probe: %w", err)
	}
	err := hw.Connect(hardware.Connection{
		Source:      hardware.SourceDMAPlay,
		Destination: hardware.DestDAC,
		Clock:       hardware.ClockExternal,
		Prescale:    hardware.Prescale50K,
	})
	if err != nil {
		return fmt.Errorf("connect clock probe: %w", err)
	}
	if err := hw.SetMode(hardware.ModeMono8); err != nil {
		return fmt.Errorf("clock probe mode: %w", err)
	}
	if err := hw.SetControl(hardware.AdderInput, hardware.AdderMatrix); err != nil {
		return fmt.Errorf("clock probe adder: %w", err)
	}
	if err := hw.SetBuffer(buf); err != nil {
		return fmt.Errorf("clock probe buffer: %w", err)
	}
	if err := hw.EnablePins(hardware.PinsEnableAll); err != nil {
		return fmt.Errorf("enable clock pins: %w", err)
	}
	return nil
}
