// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/sndsetup"
	"github.com/ik5/sndsetup/audio"
	"github.com/ik5/sndsetup/formats/aiff"
	"github.com/ik5/sndsetup/formats/mp3"
	"github.com/ik5/sndsetup/formats/vorbis"
	"github.com/ik5/sndsetup/formats/wav"
	"github.com/ik5/sndsetup/internal/config"
	"github.com/ik5/sndsetup/machine"
)

var errUsage = errors.New("bad usage")

// toneSeconds is the length of the tone command's output.
const toneSeconds = 2

type app struct {
	logger *zap.SugaredLogger
	cfg    config.Config
	out    io.Writer
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "negotiate":
		desired, err := a.cfg.Desired.Spec()
		if err != nil {
			return err
		}
		_, err = a.negotiate(desired, nil)
		return err

	case "probe":
		if len(args) != 1 {
			return fmt.Errorf("%w: probe takes one file", errUsage)
		}
		desired, err := a.probe(args[0])
		if err != nil {
			return err
		}
		_, err = a.negotiate(desired, nil)
		return err

	case "tone":
		if len(args) != 1 {
			return fmt.Errorf("%w: tone takes one output file", errUsage)
		}
		desired, err := a.cfg.Desired.Spec()
		if err != nil {
			return err
		}
		_, err = a.negotiate(desired, func(obtained audio.AudioSpec) error {
			return a.writeTone(args[0], obtained)
		})
		return err

	case "machines":
		a.listMachines()
		return nil
	}

	return fmt.Errorf("%w: unknown command %q", errUsage, command)
}

// negotiate opens a session for desired, reports it and closes it again.
// use runs while the session is active.
func (a *app) negotiate(desired audio.AudioSpec, use func(audio.AudioSpec) error) (audio.AudioSpec, error) {
	profile, err := a.cfg.Profile()
	if err != nil {
		return audio.AudioSpec{}, err
	}
	m := machine.New(profile)

	driver := sndsetup.NewDriver(m, m,
		audio.WithPolicy(a.cfg.Policy),
		audio.WithLogger(a.logger.Named("audio")))

	obtained, ok := driver.Init(desired)
	if !ok {
		return audio.AudioSpec{}, fmt.Errorf("negotiate on %s: %w", profile.Name, driver.Err())
	}

	caps := driver.Session().Capabilities()
	fmt.Fprintf(a.out, "machine:   %s (%v)\n", profile.Name, caps.Generation)
	fmt.Fprintf(a.out, "formats:   %v\n", caps.Formats)
	if caps.ExternalInputs || caps.ExtendedEnv {
		fmt.Fprintf(a.out, "clocks:    %v, %v\n", caps.ExternalClocks[0], caps.ExternalClocks[1])
	}
	fmt.Fprintf(a.out, "desired:   %v\n", desired)
	fmt.Fprintf(a.out, "obtained:  %v\n", obtained)
	fmt.Fprintf(a.out, "latency:   %v\n", obtained.Latency())

	var useErr error
	if use != nil {
		useErr = use(obtained)
	}

	if !driver.Deinit() {
		return obtained, errors.Join(useErr, fmt.Errorf("release %s: %w", profile.Name, driver.Err()))
	}
	return obtained, useErr
}

func newRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Prober{})
	reg.Register("aif", aiff.Prober{})
	reg.Register("aiff", aiff.Prober{})
	reg.Register("mp3", mp3.Prober{})
	reg.Register("ogg", vorbis.Prober{})
	return reg
}

func (a *app) probe(path string) (audio.AudioSpec, error) {
	reg := newRegistry()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	prober, ok := reg.Get(ext)
	if !ok {
		return audio.AudioSpec{}, fmt.Errorf("unsupported format %q, want one of %v", ext, reg.Formats())
	}

	f, err := os.Open(path)
	if err != nil {
		return audio.AudioSpec{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	desired, err := prober.Probe(f, a.cfg.Desired.Samples)
	if err != nil {
		return audio.AudioSpec{}, fmt.Errorf("probe %s: %w", path, err)
	}
	a.logger.Debugw("Probed media file", "path", path, "desired", desired)

	return desired, nil
}

func (a *app) writeTone(path string, obtained audio.AudioSpec) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	tone := obtained
	if carrier := wav.CarrierFormat(obtained.Format); carrier != obtained.Format {
		a.logger.Infow("WAV cannot carry the obtained format, substituting",
			"obtained", obtained.Format, "written", carrier)
		tone.Format = carrier
		tone.Size = tone.BufferSize()
	}

	err = wav.WriteTone(f, tone, 440, tone.Frequency*toneSeconds)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	a.logger.Infow("Wrote test tone", "path", path, "spec", tone)
	return nil
}

func (a *app) listMachines() {
	for _, name := range machine.Presets() {
		p, _ := machine.Preset(name)
		fmt.Fprintf(a.out, "%-12s %v\n", name, p.Generation)
	}
	for _, p := range a.cfg.Machines {
		fmt.Fprintf(a.out, "%-12s %v (custom)\n", p.Name, p.Generation)
	}
}
