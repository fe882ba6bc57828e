// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"

	"github.com/ik5/sndsetup/hardware"
)

// ErrInjected is returned by FaultyHardware for the failing call.
var ErrInjected = errors.New("injected hardware fault")

var (
	_ hardware.Hardware = (*FaultyHardware)(nil)
	_ hardware.Features = Features(nil)
)

// FaultyHardware wraps a hardware.Hardware, records every call by method
// name and fails exactly one of them on request.
type FaultyHardware struct {
	hw hardware.Hardware

	calls  []string
	failAt int // 1-based call number to fail, 0 disables
	failOn string
	nth    int
	seen   map[string]int
}

// NewFaultyHardware wraps hw without any fault armed.
func NewFaultyHardware(hw hardware.Hardware) *FaultyHardware {
	return &FaultyHardware{
		hw:   hw,
		seen: make(map[string]int),
	}
}

// FailAtCall arms a fault on the n-th call of any method.
func (f *FaultyHardware) FailAtCall(n int) {
	f.failAt = n
	f.failOn = ""
}

// FailOn arms a fault on the n-th call of the named method.
func (f *FaultyHardware) FailOn(method string, n int) {
	f.failOn = method
	f.nth = n
	f.failAt = 0
}

// Calls returns the method names in call order.
func (f *FaultyHardware) Calls() []string {
	return append([]string(nil), f.calls...)
}

// Count returns how often method was called.
func (f *FaultyHardware) Count(method string) int { return f.seen[method] }

func (f *FaultyHardware) call(method string) error {
	f.calls = append(f.calls, method)
	f.seen[method]++

	if f.failAt > 0 && len(f.calls) == f.failAt {
		return fmt.Errorf("%w: call %d (%s)", ErrInjected, f.failAt, method)
	}
	if f.failOn == method && f.seen[method] == f.nth {
		return fmt.Errorf("%w: %s #%d", ErrInjected, method, f.nth)
	}
	return nil
}

func (f *FaultyHardware) Lock() error {
	if err := f.call("Lock"); err != nil {
		return err
	}
	return f.hw.Lock()
}

func (f *FaultyHardware) Unlock() error {
	if err := f.call("Unlock"); err != nil {
		return err
	}
	return f.hw.Unlock()
}

func (f *FaultyHardware) Control(c hardware.Control) (int, error) {
	if err := f.call("Control"); err != nil {
		return 0, err
	}
	return f.hw.Control(c)
}

func (f *FaultyHardware) SetControl(c hardware.Control, value int) error {
	if err := f.call("SetControl"); err != nil {
		return err
	}
	return f.hw.SetControl(c, value)
}

func (f *FaultyHardware) Connect(c hardware.Connection) error {
	if err := f.call("Connect"); err != nil {
		return err
	}
	return f.hw.Connect(c)
}

func (f *FaultyHardware) SetMode(m hardware.Mode) error {
	if err := f.call("SetMode"); err != nil {
		return err
	}
	return f.hw.SetMode(m)
}

func (f *FaultyHardware) SetBuffer(buf []byte) error {
	if err := f.call("SetBuffer"); err != nil {
		return err
	}
	return f.hw.SetBuffer(buf)
}

func (f *FaultyHardware) StopPlayback() error {
	if err := f.call("StopPlayback"); err != nil {
		return err
	}
	return f.hw.StopPlayback()
}

func (f *FaultyHardware) RequestFrequency(hz int) (int, error) {
	if err := f.call("RequestFrequency"); err != nil {
		return 0, err
	}
	return f.hw.RequestFrequency(hz)
}

func (f *FaultyHardware) Status(q hardware.StatusQuery) (int, error) {
	if err := f.call("Status"); err != nil {
		return 0, err
	}
	return f.hw.Status(q)
}

func (f *FaultyHardware) Reset() error {
	if err := f.call("Reset"); err != nil {
		return err
	}
	return f.hw.Reset()
}

func (f *FaultyHardware) Pins() (int, error) {
	if err := f.call("Pins"); err != nil {
		return 0, err
	}
	return f.hw.Pins()
}

func (f *FaultyHardware) EnablePins(mask int) error {
	if err := f.call("EnablePins"); err != nil {
		return err
	}
	return f.hw.EnablePins(mask)
}

func (f *FaultyHardware) SetPins(value int) error {
	if err := f.call("SetPins"); err != nil {
		return err
	}
	return f.hw.SetPins(value)
}

func (f *FaultyHardware) Alloc(size int, region hardware.Region) ([]byte, error) {
	if err := f.call("Alloc"); err != nil {
		return nil, err
	}
	return f.hw.Alloc(size, region)
}

func (f *FaultyHardware) Free(buf []byte) error {
	if err := f.call("Free"); err != nil {
		return err
	}
	return f.hw.Free(buf)
}

func (f *FaultyHardware) MeasureClockTicks(t hardware.ProbeTiming) (int, error) {
	if err := f.call("MeasureClockTicks"); err != nil {
		return 0, err
	}
	return f.hw.MeasureClockTicks(t)
}

// Features is a feature registry backed by a map.
type Features map[hardware.Tag]hardware.Cookie

func (f Features) Lookup(t hardware.Tag) (hardware.Cookie, bool) {
	c, ok := f[t]
	return c, ok
}
