// SPDX-License-Identifier: EPL-2.0

// Package machine emulates the sound subsystems of the Atari family in
// memory.
//
// A Machine implements both hardware.Hardware and hardware.Features, so it
// can stand in for a real machine wherever the negotiation core expects one:
//
//	p, _ := machine.Preset("falcon-fdi")
//	m := machine.New(p)
//	s, err := audio.Initialize(m, m, desired)
//
// # Presets
//
// The built-in profiles cover the hardware generations and the software
// layers that change what a machine reports:
//   - st, ste, tt: PSG only, then 8-bit DMA sound
//   - falcon, falcon-fdi: 8/16-bit matrix sound, the latter with a CD and a
//     DAT crystal on its external clock inputs
//   - milan-gsxb: extended sound API with every encoding and free rates
//   - aranym: Falcon sound without external inputs
//   - macsound, xsound: McSn playback emulation
//   - stfa: STFA emulating 16-bit playback
//
// # Custom Profiles
//
// DecodeProfile builds a profile from configuration data, starting from a
// preset named by base:
//
//	machines:
//	  - name: falcon-cd
//	    base: falcon
//	    external_clocks: [22579200, 0]
//
// # Clock Probes
//
// MeasureClockTicks computes the ticks a real probe would see at 200 Hz:
// the buffer length divided by the rate the selected crystal produces, capped
// at the probe budget when no crystal is fitted.
package machine
