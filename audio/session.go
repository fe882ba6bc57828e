// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/sndsetup/hardware"
)

// State is a step of the session lifecycle.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateConfigured
	StateActive
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateConfigured:
		return "configured"
	case StateActive:
		return "active"
	case StateRolledBack:
		return "rolled back"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// savedControls are restored, in this order, when a session ends.
var savedControls = []hardware.Control{
	hardware.LeftAttenuation,
	hardware.RightAttenuation,
	hardware.LeftGain,
	hardware.RightGain,
	hardware.AdderInput,
	hardware.ADCInput,
	hardware.LegacyPrescale,
}

type savedControl struct {
	control hardware.Control
	value   int
}

// Session owns the sound hardware between Initialize and Deinitialize. The
// only way to get one is a successful Initialize, so holding a Session means
// holding the hardware lock.
type Session struct {
	hw       hardware.Hardware
	features hardware.Features
	opts     []Option
	policy   Policy
	logger   *zap.SugaredLogger

	state    State
	saved    []savedControl
	pins     int
	pinsSet  bool
	caps     Capabilities
	obtained AudioSpec
}

type Option func(*Session)

func WithPolicy(p Policy) Option {
	return func(s *Session) { s.policy = p }
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Initialize negotiates desired against the hardware and applies the result.
// On failure after the hardware was locked every saved register is restored
// and the lock released before the error is returned.
func Initialize(hw hardware.Hardware, features hardware.Features, desired AudioSpec, opts ...Option) (*Session, error) {
	s := &Session{
		hw:       hw,
		features: features,
		opts:     opts,
		policy:   DefaultPolicy(),
		logger:   zap.NewNop().Sugar(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("session")

	if err := desired.Validate(s.policy.MaxFrequency); err != nil {
		return nil, err
	}

	s.state = StateAcquiring
	if err := hw.Lock(); err != nil {
		s.state = StateIdle
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s.logger.Debugw("Sound hardware locked", "desired", desired)

	if err := s.acquire(desired); err != nil {
		s.logger.Warnw("Negotiation failed, rolling back", "error", err)
		if rerr := s.rollback(); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return nil, err
	}

	s.state = StateActive
	s.logger.Infow("Sound configured", "generation", s.caps.Generation, "obtained", s.obtained)

	return s, nil
}

func (s *Session) acquire(desired AudioSpec) error {
	for _, c := range savedControls {
		v, err := s.hw.Control(c)
		if err != nil {
			return fmt.Errorf("save %v: %w", c, err)
		}
		s.saved = append(s.saved, savedControl{control: c, value: v})
	}

	gen := DetectGeneration(s.features)
	if gen == hardware.GenerationFalcon {
		pins, err := s.hw.Pins()
		if err != nil {
			return fmt.Errorf("save clock pins: %w", err)
		}
		s.pins, s.pinsSet = pins, true
	}

	caps, err := discoverCapabilities(s.hw, s.features, gen, s.policy, s.logger)
	if err != nil {
		return err
	}
	s.caps = caps
	s.logger.Debugw("Capabilities",
		"generation", caps.Generation,
		"formats", caps.Formats,
		"freeFrequency", caps.HasFreeFrequency,
		"externalClocks", caps.ExternalClocks)

	obtained, err := s.configure(desired)
	if err != nil {
		return err
	}
	s.obtained = obtained
	s.state = StateConfigured

	return nil
}

func (s *Session) configure(desired AudioSpec) (AudioSpec, error) {
	caps := s.caps
	obtained := AudioSpec{}

	format, err := Negotiate(desired.Format, caps.Formats)
	if err != nil {
		return obtained, err
	}
	obtained.Format = format

	if err := s.hw.Reset(); err != nil {
		return obtained, fmt.Errorf("reset sound matrix: %w", err)
	}

	obtained.Frequency, err = applyFrequency(s.hw, desired.Frequency, caps, s.policy, s.logger)
	if err != nil {
		return obtained, err
	}

	obtained.Channels = adjustChannels(desired.Channels, format, caps)

	if err := s.hw.SetMode(modeFor(format, obtained.Channels)); err != nil {
		return obtained, fmt.Errorf("set mode: %w", err)
	}

	if caps.Sound.Has(hardware.SoundExtended) {
		control, bits := formatBits(format)
		if err := s.hw.SetControl(control, bits); err != nil {
			return obtained, fmt.Errorf("set format %v: %w", format, err)
		}
	}

	if err := s.hw.SetControl(hardware.AdderInput, hardware.AdderMatrix); err != nil {
		return obtained, fmt.Errorf("route matrix to adder: %w", err)
	}

	obtained.Samples = desired.Samples
	if !caps.HasFreeFrequency {
		// keep one block below 1/8 s
		for obtained.Samples > 1 && obtained.Samples*16 > obtained.Frequency*2 {
			obtained.Samples >>= 1
		}
	}
	obtained.Size = obtained.BufferSize()

	return obtained, nil
}

func adjustChannels(desired int, format AudioFormat, caps Capabilities) int {
	switch {
	case desired == 1 && format.Is16Bit() && !caps.Has16BitMono:
		return 2
	case desired == 2 && !format.Is16Bit() && !caps.Has8BitStereo:
		return 1
	}
	return desired
}

func modeFor(format AudioFormat, channels int) hardware.Mode {
	switch {
	case format.Is16Bit() && channels == 1:
		return hardware.ModeMono16
	case format.Is16Bit():
		return hardware.ModeStereo16
	case channels == 1:
		return hardware.ModeMono8
	}
	return hardware.ModeStereo8
}

func formatBits(format AudioFormat) (hardware.Control, int) {
	bits := hardware.EncodingUnsigned
	if format.Signed() {
		bits = hardware.EncodingSigned
	}
	if !format.Is16Bit() {
		return hardware.Format8, bits
	}
	if format.BigEndian() {
		return hardware.Format16, bits | hardware.EncodingBigEndian
	}
	return hardware.Format16, bits | hardware.EncodingLittleEndian
}

// rollback stops playback, restores everything saved and unlocks. Every
// step runs even when an earlier one fails.
func (s *Session) rollback() error {
	var errs []error

	// nothing was written before every control was saved
	if len(s.saved) == len(savedControls) {
		errs = s.restore()
	}
	if err := s.hw.Unlock(); err != nil {
		errs = append(errs, fmt.Errorf("unlock: %w", err))
	}

	s.state = StateRolledBack
	s.logger.Debugw("Sound hardware restored", "errors", len(errs))

	return errors.Join(errs...)
}

func (s *Session) restore() []error {
	var errs []error

	if err := s.hw.StopPlayback(); err != nil {
		errs = append(errs, fmt.Errorf("stop playback: %w", err))
	}
	if err := s.hw.Reset(); err != nil {
		errs = append(errs, fmt.Errorf("reset sound matrix: %w", err))
	}
	// only the pin values can be saved, the direction set by the clock probe
	// stays enabled
	if s.pinsSet {
		if err := s.hw.SetPins(s.pins); err != nil {
			errs = append(errs, fmt.Errorf("restore clock pins: %w", err))
		}
	}
	for _, sc := range s.saved {
		if err := s.hw.SetControl(sc.control, sc.value); err != nil {
			errs = append(errs, fmt.Errorf("restore %v: %w", sc.control, err))
		}
	}

	return errs
}

// Deinitialize restores the hardware to its state before Initialize and
// releases it. It fails with ErrNotActive on a session that already ended.
func (s *Session) Deinitialize() error {
	if s.state != StateActive {
		return fmt.Errorf("%w: %v", ErrNotActive, s.state)
	}
	s.logger.Debug("Deinitializing")
	return s.rollback()
}

// Restart ends the session and negotiates desired from scratch with the same
// hardware and options.
func (s *Session) Restart(desired AudioSpec) (*Session, error) {
	if err := s.Deinitialize(); err != nil {
		return nil, err
	}
	return Initialize(s.hw, s.features, desired, s.opts...)
}

func (s *Session) State() State { return s.state }

func (s *Session) Obtained() AudioSpec { return s.obtained }

func (s *Session) Capabilities() Capabilities { return s.caps }
