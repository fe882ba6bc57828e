// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ik5/sndsetup/internal/config"
)

var (
	gitCommit  string
	versionTag string

	configPath string
	verbose    bool
	overrides  flags
)

const usage = `usage: sndsetup [flags] <command> [args]

commands:
  negotiate         negotiate the configured desired spec
  probe <file>      negotiate the spec a media file asks for
  tone <out.wav>    negotiate and write a test tone in the obtained spec
  machines          list the machines that can be emulated

flags:
`

func init() {
	flag.StringVar(&configPath, "config", "", "configuration file (default: sndsetup.yaml)")
	flag.BoolVar(&verbose, "verbose", false, "show debug logs")
	flag.BoolVar(&verbose, "v", false, "shorthand for --verbose")
	overrides.register(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	// config problems are reported before the configured logger exists
	bootstrap, err := config.NewLogger("info")
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}

	cm := config.New(bootstrap, configPath)
	if err := cm.Load(); err != nil {
		bootstrap.Fatalw("Failed to load configuration", "error", err)
	}
	cfg := overrides.apply(cm.Current())

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := config.NewLogger(level)
	if err != nil {
		bootstrap.Fatalw("Failed to create logger", "error", err)
	}
	defer logger.Sync() //nolint:errcheck

	named := logger.Named("main")
	named.Debugw("Version info", "gitCommit", gitCommit, "versionTag", versionTag)

	app := &app{logger: logger, cfg: cfg, out: os.Stdout}
	if err := app.run(flag.Arg(0), flag.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, err)
			flag.Usage()
			os.Exit(2)
		}
		named.Errorw("Command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

// flags override configured values when set.
type flags struct {
	machine   string
	frequency int
	channels  int
	format    string
	samples   int
}

func (f *flags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.machine, "machine", "", "machine preset or custom machine name")
	fs.IntVar(&f.frequency, "frequency", 0, "desired frequency in Hz")
	fs.IntVar(&f.channels, "channels", 0, "desired channel count")
	fs.StringVar(&f.format, "format", "", "desired format (S8, S16LSB, S16MSB, U8, U16LSB, U16MSB)")
	fs.IntVar(&f.samples, "samples", 0, "desired block size in samples")
}

func (f *flags) apply(cfg config.Config) config.Config {
	if f.machine != "" {
		cfg.Machine = f.machine
	}
	if f.frequency != 0 {
		cfg.Desired.Frequency = f.frequency
	}
	if f.channels != 0 {
		cfg.Desired.Channels = f.channels
	}
	if f.format != "" {
		cfg.Desired.Format = f.format
	}
	if f.samples != 0 {
		cfg.Desired.Samples = f.samples
	}
	return cfg
}
