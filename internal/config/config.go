// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ik5/sndsetup/audio"
	"github.com/ik5/sndsetup/hardware"
	"github.com/ik5/sndsetup/machine"
)

const (
	configName = "sndsetup"
	configType = "yaml"
	envPrefix  = "SNDSETUP"

	configKeyLogLevel = "log_level"
	configKeyMachine  = "machine"
	configKeyMachines = "machines"
	configKeyDesired  = "desired"
	configKeyPolicy   = "policy"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the CLI configuration after defaults, file and environment were
// merged.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// Machine names a custom machine from Machines or a built-in preset.
	Machine string `mapstructure:"machine"`

	Desired Desired      `mapstructure:"desired"`
	Policy  audio.Policy `mapstructure:"policy"`

	// Machines are the custom profiles, decoded with machine.DecodeProfile.
	Machines []machine.Profile `mapstructure:"-"`
}

// Desired is the configured default request.
type Desired struct {
	Frequency int    `mapstructure:"frequency"`
	Channels  int    `mapstructure:"channels"`
	Format    string `mapstructure:"format"`
	Samples   int    `mapstructure:"samples"`
}

// Spec converts the request, validating only the format name. The rest is
// validated by the session.
func (d Desired) Spec() (audio.AudioSpec, error) {
	format, err := audio.ParseFormat(d.Format)
	if err != nil {
		return audio.AudioSpec{}, err
	}
	return audio.AudioSpec{
		Frequency: d.Frequency,
		Channels:  d.Channels,
		Format:    format,
		Samples:   d.Samples,
	}, nil
}

// Profile resolves Machine, custom machines first.
func (c Config) Profile() (machine.Profile, error) {
	for _, p := range c.Machines {
		if p.Name == c.Machine {
			return p, nil
		}
	}
	p, ok := machine.Preset(c.Machine)
	if !ok {
		return machine.Profile{}, fmt.Errorf("%w: %q", machine.ErrUnknownProfile, c.Machine)
	}
	return p, nil
}

type Manager struct {
	logger *zap.SugaredLogger
	v      *viper.Viper
	path   string

	current Config
}

// New prepares a manager reading path, or sndsetup.yaml from the working
// directory and the user config directory when path is empty. Environment
// variables prefixed SNDSETUP_ override both.
func New(logger *zap.SugaredLogger, path string) *Manager {
	logger = logger.Named("config")

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	logger.Debug("Created config instance")

	return &Manager{
		logger: logger,
		v:      v,
		path:   path,
	}
}

func setDefaults(v *viper.Viper) {
	p := audio.DefaultPolicy()
	skip := make([]string, len(p.SkipLowestLegacyOn))
	for i, g := range p.SkipLowestLegacyOn {
		skip[i] = g.String()
	}

	v.SetDefault(configKeyLogLevel, "info")
	v.SetDefault(configKeyMachine, "falcon")
	v.SetDefault(configKeyMachines, []any{})

	v.SetDefault(configKeyDesired+".frequency", 44100)
	v.SetDefault(configKeyDesired+".channels", 2)
	v.SetDefault(configKeyDesired+".format", audio.FormatSigned16LSB.String())
	v.SetDefault(configKeyDesired+".samples", 1024)

	v.SetDefault(configKeyPolicy+".max_frequency", p.MaxFrequency)
	v.SetDefault(configKeyPolicy+".skip_lowest_legacy_on", skip)
	v.SetDefault(configKeyPolicy+".remap_legacy_prescale", p.RemapLegacyPrescale)
	v.SetDefault(configKeyPolicy+".probe_buffer_size", p.ProbeBufferSize)
	v.SetDefault(configKeyPolicy+".probe_timing.start_delay", p.ProbeTiming.StartDelay)
	v.SetDefault(configKeyPolicy+".probe_timing.budget", p.ProbeTiming.Budget)
}

// Load reads the file and environment. A missing file is only an error when
// it was named explicitly.
func (m *Manager) Load() error {
	m.logger.Debugw("Loading config", "path", m.path)

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if m.path != "" || !errors.As(err, &notFound) {
			m.logger.Warnw("Viper failed to read config", "error", err)
			return fmt.Errorf("read config: %w", err)
		}
		m.logger.Debugw("No config file found, using defaults", "reminder", "this is fine")
	}

	if err := m.populate(); err != nil {
		m.logger.Warnw("Failed to populate config fields", "error", err)
		return fmt.Errorf("populate config fields: %w", err)
	}

	m.logger.Infow("Config values",
		"file", m.v.ConfigFileUsed(),
		"machine", m.current.Machine,
		"customMachines", len(m.current.Machines))

	return nil
}

func (m *Manager) populate() error {
	var cfg Config
	err := m.v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
		stringToGenerationHook(),
	)))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	raw, ok := m.v.Get(configKeyMachines).([]any)
	if !ok && m.v.Get(configKeyMachines) != nil {
		return fmt.Errorf("%w: %s must be a list", ErrInvalidConfig, configKeyMachines)
	}
	for i, entry := range raw {
		p, err := machine.DecodeProfile(entry)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", configKeyMachines, i, err)
		}
		cfg.Machines = append(cfg.Machines, p)
	}

	if _, err := cfg.Desired.Spec(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := cfg.Profile(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	m.current = cfg
	m.logger.Debug("Populated config fields from viper")

	return nil
}

// Current returns the last loaded configuration.
func (m *Manager) Current() Config { return m.current }

func stringToGenerationHook() mapstructure.DecodeHookFuncType {
	target := reflect.TypeFor[hardware.Generation]()
	list := reflect.TypeFor[[]hardware.Generation]()
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		switch to {
		case target:
			return hardware.ParseGeneration(strings.TrimSpace(data.(string)))
		case list:
			// environment values arrive as one comma separated string
			var gens []hardware.Generation
			for _, part := range strings.Split(data.(string), ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				g, err := hardware.ParseGeneration(part)
				if err != nil {
					return nil, err
				}
				gens = append(gens, g)
			}
			return gens, nil
		}
		return data, nil
	}
}
