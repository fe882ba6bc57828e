// SPDX-License-Identifier: EPL-2.0

package machine

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/ik5/sndsetup/hardware"
)

// ticksPerSecond is the rate of the system timer used by clock probes.
const ticksPerSecond = 200

// Machine is an in-memory sound subsystem built from a Profile. It
// implements hardware.Hardware and hardware.Features.
type Machine struct {
	profile Profile

	mtx *sync.Mutex

	locked      bool
	controls    map[hardware.Control]int
	pins        int
	pinsEnabled int
	mode        hardware.Mode
	connections []hardware.Connection
	buffer      []byte
	playing     bool
	frequency   int
	allocated   map[*byte]int
}

// Registers is a copy of the emulated register file.
type Registers struct {
	Locked      bool
	Controls    map[hardware.Control]int
	Pins        int
	// PinsEnabled is the pin direction mask. It cannot be read back through
	// hardware.ClockPins, so a session leaves it as the clock probe set it.
	PinsEnabled int
	Mode        hardware.Mode
	Connections []hardware.Connection
	Frequency   int
	Playing     bool
	Allocations int
}

// New powers up a machine. Controls start at the profile's values, or at
// PowerOnControls when the profile has none.
func New(p Profile) *Machine {
	controls := p.Controls
	if controls == nil {
		controls = PowerOnControls()
	}
	return &Machine{
		profile:   p,
		mtx:       &sync.Mutex{},
		controls:  maps.Clone(controls),
		mode:      hardware.ModeStereo8,
		allocated: make(map[*byte]int),
	}
}

// PowerOnControls are the control values left by the operating system at
// boot, distinct from what Reset writes.
func PowerOnControls() map[hardware.Control]int {
	return map[hardware.Control]int{
		hardware.LeftAttenuation:  0x30,
		hardware.RightAttenuation: 0x30,
		hardware.LeftGain:         0x80,
		hardware.RightGain:        0x80,
		hardware.AdderInput:       hardware.AdderADC,
		hardware.ADCInput:         0x03,
		hardware.LegacyPrescale:   hardware.Pre160,
	}
}

func (m *Machine) Profile() Profile { return m.profile }

func (m *Machine) Registers() Registers {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return Registers{
		Locked:      m.locked,
		Controls:    maps.Clone(m.controls),
		Pins:        m.pins,
		PinsEnabled: m.pinsEnabled,
		Mode:        m.mode,
		Connections: slices.Clone(m.connections),
		Frequency:   m.frequency,
		Playing:     m.playing,
		Allocations: len(m.allocated),
	}
}

func (m *Machine) hasSound() bool {
	return m.profile.Sound != 0 || m.profile.Emulation != nil
}

func (m *Machine) freeRunning() bool {
	if m.profile.Sound.Has(hardware.SoundExtended) {
		return true
	}
	return m.profile.Emulation != nil && m.profile.Emulation.Play == hardware.PlaybackFalcon
}

func (m *Machine) Lock() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.hasSound() {
		return ErrNoSound
	}
	if m.locked {
		return ErrLocked
	}
	m.locked = true
	return nil
}

func (m *Machine) Unlock() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.locked {
		return ErrNotLocked
	}
	m.locked = false
	return nil
}

func (m *Machine) Control(c hardware.Control) (int, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	v, ok := m.controls[c]
	if !ok && !m.knownControl(c) {
		return 0, fmt.Errorf("%w: %v", ErrUnknownRegister, c)
	}
	return v, nil
}

func (m *Machine) SetControl(c hardware.Control, value int) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.knownControl(c) {
		return fmt.Errorf("%w: %v", ErrUnknownRegister, c)
	}
	if (c == hardware.Format8 || c == hardware.Format16) && !m.profile.Sound.Has(hardware.SoundExtended) {
		return fmt.Errorf("%w: %v needs the extended sound API", ErrUnsupported, c)
	}
	m.controls[c] = value
	return nil
}

func (m *Machine) knownControl(c hardware.Control) bool {
	switch c {
	case hardware.LeftAttenuation, hardware.RightAttenuation,
		hardware.LeftGain, hardware.RightGain,
		hardware.AdderInput, hardware.ADCInput, hardware.LegacyPrescale,
		hardware.Format8, hardware.Format16:
		return true
	}
	return false
}

func (m *Machine) Connect(c hardware.Connection) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if c.Clock == hardware.ClockExternal && m.profile.Generation != hardware.GenerationFalcon {
		return fmt.Errorf("%w: external clock on %v", ErrUnsupported, m.profile.Generation)
	}
	m.connections = append(m.connections, c)
	return nil
}

func (m *Machine) SetMode(mode hardware.Mode) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.mode = mode
	return nil
}

func (m *Machine) SetBuffer(buf []byte) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if len(buf) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrUnsupported)
	}
	m.buffer = buf
	return nil
}

func (m *Machine) StopPlayback() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.playing = false
	return nil
}

// RequestFrequency quantizes hz to the profile's divider grid.
func (m *Machine) RequestFrequency(hz int) (int, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.freeRunning() {
		return 0, fmt.Errorf("%w: no free-running frequency generator", ErrUnsupported)
	}
	if hz <= 0 {
		return 0, fmt.Errorf("%w: %d Hz", ErrUnsupported, hz)
	}

	rate := hz
	if base := m.profile.FrequencyBase; base > 0 {
		div := max(1, int(math.Round(float64(base)/float64(hz))))
		rate = base / div
	}
	m.frequency = rate
	return rate, nil
}

func (m *Machine) Status(q hardware.StatusQuery) (int, error) {
	if !m.profile.Sound.Has(hardware.SoundExtended) && q != hardware.StatusCheck {
		return 0, fmt.Errorf("%w: status %d needs the extended sound API", ErrUnsupported, q)
	}

	switch q {
	case hardware.StatusCheck:
		return 0, nil
	case hardware.StatusBitDepth:
		return m.profile.BitDepths, nil
	case hardware.StatusFormats8:
		return m.profile.Formats8, nil
	case hardware.StatusFormats16:
		return m.profile.Formats16, nil
	}
	return 0, fmt.Errorf("%w: status %d", ErrUnknownRegister, q)
}

// Reset zeroes every control, drops the format selection back to the
// driver default and clears the connection matrix.
func (m *Machine) Reset() error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	delete(m.controls, hardware.Format8)
	delete(m.controls, hardware.Format16)
	for c := range m.controls {
		m.controls[c] = 0
	}
	m.connections = nil
	m.mode = hardware.ModeStereo8
	m.playing = false
	m.frequency = 0
	return nil
}

func (m *Machine) Pins() (int, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.profile.Generation != hardware.GenerationFalcon {
		return 0, fmt.Errorf("%w: no clock pins on %v", ErrUnsupported, m.profile.Generation)
	}
	return m.pins, nil
}

func (m *Machine) EnablePins(mask int) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.profile.Generation != hardware.GenerationFalcon {
		return fmt.Errorf("%w: no clock pins on %v", ErrUnsupported, m.profile.Generation)
	}
	m.pinsEnabled = mask
	return nil
}

func (m *Machine) SetPins(value int) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.profile.Generation != hardware.GenerationFalcon {
		return fmt.Errorf("%w: no clock pins on %v", ErrUnsupported, m.profile.Generation)
	}
	m.pins = value
	return nil
}

func (m *Machine) Alloc(size int, region hardware.Region) ([]byte, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if size <= 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrNoMemory, size)
	}
	if region == hardware.RegionDMA && m.profile.NoDMAMemory {
		return nil, fmt.Errorf("%w: DMA region", ErrNoMemory)
	}
	if m.profile.MemoryLimit > 0 && size > m.profile.MemoryLimit {
		return nil, fmt.Errorf("%w: %d bytes", ErrNoMemory, size)
	}

	buf := make([]byte, size)
	m.allocated[&buf[0]] = size
	return buf, nil
}

func (m *Machine) Free(buf []byte) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if len(buf) == 0 {
		return fmt.Errorf("%w: empty buffer", ErrBadFree)
	}
	if _, ok := m.allocated[&buf[0]]; !ok {
		return ErrBadFree
	}
	delete(m.allocated, &buf[0])
	if len(m.buffer) > 0 && &m.buffer[0] == &buf[0] {
		m.buffer = nil
	}
	return nil
}

// MeasureClockTicks plays the current buffer, mono 8-bit, on the external
// input selected by the clock pins and returns the elapsed timer ticks, capped
// at the budget when no clock drives the input.
func (m *Machine) MeasureClockTicks(t hardware.ProbeTiming) (int, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if len(m.buffer) == 0 {
		return 0, fmt.Errorf("%w: no buffer set", ErrUnsupported)
	}
	if len(m.connections) == 0 {
		return 0, fmt.Errorf("%w: DMA playback not connected", ErrUnsupported)
	}
	conn := m.connections[len(m.connections)-1]

	var hz int
	switch m.pins {
	case hardware.PinsInput1:
		hz = m.profile.ExternalClocks[0]
	case hardware.PinsInput2:
		hz = m.profile.ExternalClocks[1]
	}
	if conn.Clock != hardware.ClockExternal || hz == 0 {
		return t.Budget, nil
	}

	rate := hz / 256 / (int(conn.Prescale) + 1)
	if rate <= 0 {
		return t.Budget, nil
	}
	ticks := len(m.buffer) * ticksPerSecond / rate
	return min(ticks, t.Budget), nil
}

func (m *Machine) Lookup(t hardware.Tag) (hardware.Cookie, bool) {
	p := m.profile
	switch t {
	case hardware.TagMachine:
		if p.NoMachineCookie {
			return hardware.Cookie{}, false
		}
		return hardware.Cookie{Value: hardware.MachineCookie(p.Generation)}, true
	case hardware.TagSound:
		if p.Sound == 0 {
			return hardware.Cookie{}, false
		}
		return hardware.Cookie{Value: uint32(p.Sound)}, true
	case hardware.TagMacSound:
		if p.Emulation == nil {
			return hardware.Cookie{}, false
		}
		e := *p.Emulation
		return hardware.Cookie{Descriptor: &e}, true
	case hardware.TagSTFA:
		if p.Shim == nil {
			return hardware.Cookie{}, false
		}
		s := *p.Shim
		return hardware.Cookie{Descriptor: &s}, true
	}
	return hardware.Cookie{}, false
}
