// SPDX-License-Identifier: EPL-2.0

package hardware

// Controller is the register-level surface of a sound subsystem.
// Control inquires a register without changing it.
type Controller interface {
	// Lock takes exclusive ownership of the sound hardware. It fails when the
	// hardware is absent or already owned.
	Lock() error
	Unlock() error

	Control(c Control) (int, error)
	SetControl(c Control, value int) error

	// Connect wires a source into the connection matrix.
	Connect(c Connection) error
	SetMode(m Mode) error
	SetBuffer(buf []byte) error
	StopPlayback() error

	// RequestFrequency asks free-running hardware for hz and returns the rate
	// the hardware actually settled on.
	RequestFrequency(hz int) (int, error)

	Status(q StatusQuery) (int, error)
	// Reset puts the matrix and codec back to power-on defaults.
	Reset() error
}

// ClockPins drives the general purpose pins that select an external clock
// input on hardware with two of them.
type ClockPins interface {
	Pins() (int, error)
	EnablePins(mask int) error
	SetPins(value int) error
}

// Memory hands out scratch buffers the sound DMA can read.
type Memory interface {
	Alloc(size int, region Region) ([]byte, error)
	Free(buf []byte) error
}

// ProbeTiming is the tick schedule of a clock measurement: playback is armed
// StartDelay ticks after the call and stopped after Budget ticks at most.
type ProbeTiming struct {
	StartDelay int `mapstructure:"start_delay"`
	Budget     int `mapstructure:"budget"`
}

// ClockProbe plays the buffer set with SetBuffer once and reports how many
// system ticks elapsed between arming and the end of playback. Implementations
// must keep interrupts off for the synchronisation and polling loop only.
type ClockProbe interface {
	MeasureClockTicks(t ProbeTiming) (int, error)
}

// Hardware is everything a negotiation session needs from the machine.
type Hardware interface {
	Controller
	ClockPins
	Memory
	ClockProbe
}

// Features is the feature-token registry of the running system.
type Features interface {
	Lookup(t Tag) (Cookie, bool)
}

// Cookie is a registry entry. Descriptor holds the decoded structure for
// tokens that point at one (*PlaybackEmulation, *CompatShim), nil otherwise.
type Cookie struct {
	Value      uint32
	Descriptor any
}
