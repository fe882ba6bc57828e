// SPDX-License-Identifier: EPL-2.0

package sndsetup

import (
	"errors"
	"fmt"

	"github.com/ik5/sndsetup/audio"
	"github.com/ik5/sndsetup/hardware"
	"github.com/ik5/sndsetup/machine"
)

// ErrAlreadyInitialized is kept by a Driver asked to Init twice.
var ErrAlreadyInitialized = errors.New("driver already initialized")

// Driver is the two-call surface over a Session: Init reports success as a
// bool and the obtained spec, Deinit reports success as a bool. The error
// behind a false result is kept until the next call and returned by Err.
//
// A Driver is not safe for concurrent use.
type Driver struct {
	hw       hardware.Hardware
	features hardware.Features
	opts     []audio.Option

	session *audio.Session
	err     error
}

// NewDriver returns a Driver over hw and features. opts are passed to every
// audio.Initialize.
func NewDriver(hw hardware.Hardware, features hardware.Features, opts ...audio.Option) *Driver {
	return &Driver{
		hw:       hw,
		features: features,
		opts:     opts,
	}
}

// NewMachineDriver returns a Driver over a fresh emulated machine built from
// the named preset.
func NewMachineDriver(preset string, opts ...audio.Option) (*Driver, *machine.Machine, error) {
	p, ok := machine.Preset(preset)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", machine.ErrUnknownProfile, preset)
	}
	m := machine.New(p)
	return NewDriver(m, m, opts...), m, nil
}

// Init negotiates desired and applies it. On false nothing was changed on
// the hardware and Err says why.
func (d *Driver) Init(desired audio.AudioSpec) (audio.AudioSpec, bool) {
	d.err = nil
	if d.session != nil {
		d.err = fmt.Errorf("%w: %w", audio.ErrUnavailable, ErrAlreadyInitialized)
		return audio.AudioSpec{}, false
	}

	s, err := audio.Initialize(d.hw, d.features, desired, d.opts...)
	if err != nil {
		d.err = err
		return audio.AudioSpec{}, false
	}

	d.session = s
	return s.Obtained(), true
}

// Deinit restores the hardware and releases it. It is false without a
// preceding successful Init, and when a register could not be restored.
func (d *Driver) Deinit() bool {
	d.err = nil
	if d.session == nil {
		d.err = audio.ErrNotActive
		return false
	}

	s := d.session
	d.session = nil
	if err := s.Deinitialize(); err != nil {
		d.err = err
		return false
	}
	return true
}

// Err returns the error behind the last false result, or nil.
func (d *Driver) Err() error { return d.err }

// Session returns the active session, or nil between Deinit and Init.
func (d *Driver) Session() *audio.Session { return d.session }
