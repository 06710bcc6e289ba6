package commands

import (
	"fmt"
	"strings"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
)

// Runner is the interface implemented by all subcommands.
type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

// AppContext carries global flags and build info into the subcommands.
type AppContext struct {
	ConfigPath string
	Verbose    bool
	Version    string
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, nil
}

// stringSliceFlag collects repeated flag values.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}
