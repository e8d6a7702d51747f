// Copyright © 2020 The Pea Authors under an MIT-style license.

package sem

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config are configuration parameters for the type checker.
type Config struct {
	// Trace is whether to enable debug tracing.
	Trace bool `yaml:"trace"`
	// TraceOut is where trace output is written (default=os.Stdout).
	TraceOut io.Writer `yaml:"-"`
	// PrintCalls are the names of the printing and formatting calls
	// whose arguments are checked.
	// The default is print, println, eprint, eprintln, and format.
	PrintCalls []string `yaml:"print_calls"`
}

// FormatCall is the print call that returns a String instead of void.
const FormatCall = "format"

var defaultPrintCalls = []string{"print", "println", "eprint", "eprintln", FormatCall}

func setConfigDefaults(cfg *Config) {
	if cfg.TraceOut == nil {
		cfg.TraceOut = os.Stdout
	}
	if len(cfg.PrintCalls) == 0 {
		cfg.PrintCalls = defaultPrintCalls
	}
}

// ReadConfig reads a YAML-encoded Config.
// Fields missing from the input keep their default values.
func ReadConfig(r io.Reader) (Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "failed to read config")
	}
	setConfigDefaults(&cfg)
	return cfg, nil
}
