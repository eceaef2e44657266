package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Env holds the settings that may come from the environment. They act as
// defaults for the matching command line flags.
type Env struct {
	Difficulty  string `env:"GOSWEEP_DIFFICULTY" envDefault:"expert"`
	Seed        int64  `env:"GOSWEEP_SEED"`
	PresetsFile string `env:"GOSWEEP_PRESETS"`
	LogLevel    string `env:"GOSWEEP_LOG_LEVEL" envDefault:"warning"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// ParseEnvFrom loads Env from the given variables instead of the process
// environment.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Env{}, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}
