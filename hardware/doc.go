// SPDX-License-Identifier: EPL-2.0

// Package hardware describes the boundary between the negotiation core and a
// sound subsystem: the register-level Controller, the clock pins, scratch
// memory, the timed clock probe and the feature-token registry.
//
// Nothing in this package talks to real hardware. Implementations live
// elsewhere, for example the in-memory emulator in package machine.
//
// Register numbers, matrix constants and token layouts follow the Falcon
// sound XBIOS so that a native implementation can pass values straight
// through:
//
//	hw.Connect(hardware.Connection{
//	    Source:      hardware.SourceDMAPlay,
//	    Destination: hardware.DestDAC,
//	    Clock:       hardware.ClockInternal25M,
//	    Prescale:    hardware.Prescale50K,
//	})
package hardware
