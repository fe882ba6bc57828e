// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"github.com/ik5/sndsetup/hardware"
)

var _ hardware.Hardware = (*TickedHardware)(nil)

// TickedHardware replays fixed clock probe results, one per call, on top of
// another hardware.Hardware. Once Ticks is exhausted the last value repeats.
type TickedHardware struct {
	hardware.Hardware
	Ticks []int

	probes int
}

func (t *TickedHardware) MeasureClockTicks(hardware.ProbeTiming) (int, error) {
	if len(t.Ticks) == 0 {
		return 0, nil
	}
	i := min(t.probes, len(t.Ticks)-1)
	t.probes++
	return t.Ticks[i], nil
}
