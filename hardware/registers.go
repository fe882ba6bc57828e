// SPDX-License-Identifier: EPL-2.0

package hardware

// Control selects a codec register.
type Control int

const (
	LeftAttenuation Control = iota
	RightAttenuation
	LeftGain
	RightGain
	AdderInput
	ADCInput
	LegacyPrescale
	_ // sample frequency, see Controller.RequestFrequency
	Format8
	Format16
)

var controlNames = map[Control]string{
	LeftAttenuation:  "left attenuation",
	RightAttenuation: "right attenuation",
	LeftGain:         "left gain",
	RightGain:        "right gain",
	AdderInput:       "adder input",
	ADCInput:         "ADC input",
	LegacyPrescale:   "legacy prescale",
	Format8:          "8-bit format",
	Format16:         "16-bit format",
}

func (c Control) String() string {
	if n, ok := controlNames[c]; ok {
		return n
	}
	return "unknown control"
}

// Adder input bits.
const (
	AdderADC    = 1 << 0
	AdderMatrix = 1 << 1
)

// Legacy (STE/TT) prescale selectors written to LegacyPrescale.
const (
	Pre1280 = 0
	Pre640  = 1
	Pre320  = 2
	Pre160  = 3
)

// Format register bits for Format8 / Format16 and the matching status queries.
const (
	EncodingSigned       = 1 << 0
	EncodingUnsigned     = 1 << 1
	EncodingBigEndian    = 1 << 2
	EncodingLittleEndian = 1 << 3
)

// Bit depth bits returned by StatusBitDepth.
const (
	Depth8  = 1 << 0
	Depth16 = 1 << 1
)

// StatusQuery selects a status register.
type StatusQuery int

const (
	StatusCheck     StatusQuery = 0
	StatusBitDepth  StatusQuery = 2
	StatusFormats8  StatusQuery = 8
	StatusFormats16 StatusQuery = 9
)

// Mode is the playback track layout.
type Mode int

const (
	ModeStereo8 Mode = iota
	ModeStereo16
	ModeMono8
	ModeMono16
)

func (m Mode) String() string {
	switch m {
	case ModeStereo8:
		return "stereo 8-bit"
	case ModeStereo16:
		return "stereo 16-bit"
	case ModeMono8:
		return "mono 8-bit"
	case ModeMono16:
		return "mono 16-bit"
	}
	return "unknown mode"
}

// Source is a connection matrix input.
type Source int

const (
	SourceDMAPlay Source = iota
	SourceDSPTransmit
	SourceExternal
	SourceADC
)

// Destination bits of the connection matrix. Zero means no destination.
const (
	DestDMARecord = 1 << 0
	DestDSPRecv   = 1 << 1
	DestExternal  = 1 << 2
	DestDAC       = 1 << 3
)

// Clock is a connection clock source.
type Clock int

const (
	ClockInternal25M Clock = iota
	ClockExternal
	ClockInternal32M
)

func (c Clock) String() string {
	switch c {
	case ClockInternal25M:
		return "internal 25.175 MHz"
	case ClockExternal:
		return "external"
	case ClockInternal32M:
		return "internal 32 MHz"
	}
	return "unknown clock"
}

// Prescale divides the connection clock. PrescaleOld hands rate selection to
// the legacy LegacyPrescale register.
type Prescale int

const (
	PrescaleOld Prescale = 0
	Prescale50K Prescale = 1
	Prescale33K Prescale = 2
	Prescale25K Prescale = 3
	Prescale20K Prescale = 4
	Prescale16K Prescale = 5
	Prescale12K Prescale = 7
	Prescale10K Prescale = 9
	Prescale8K  Prescale = 11

	// PrescaleIllegal is the out of range divider some emulators expect in
	// place of the lowest legacy rate.
	PrescaleIllegal Prescale = 15
)

// Connection is one Devconnect-style wiring request.
type Connection struct {
	Source      Source
	Destination int
	Clock       Clock
	Prescale    Prescale
	Handshake   bool
}

// Clock pin values. PinsEnableAll turns on clock selection, FDI direction and
// FDI reset control; the write values pick input 1 or input 2 in play mode.
const (
	PinsEnableAll = 0x07
	PinsInput1    = 0x02
	PinsInput2    = 0x03
)

// Region is the memory pool a scratch buffer comes from.
type Region int

const (
	RegionDMA Region = iota
	RegionAny
)
