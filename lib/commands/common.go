package commands

import (
	"fmt"

	"spamdomains/lib/config"
)

type Runner interface {
	Init(args []string, ctx *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
}

// loadAndValidateConfig loads the configuration file if one was given,
// falling back to built-in defaults otherwise. Flags parsed by the
// individual commands overlay the result.
func loadAndValidateConfig(ctx *AppContext) (*config.Config, error) {
	if ctx.ConfigPath == "" {
		return config.Default(), nil
	}

	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation is failed: %v", err)
	}
	return cfg, nil
}
