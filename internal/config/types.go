package config

import (
	"path/filepath"
	"sort"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/errors"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/utils"
)

type Config struct {
	// General holds process-wide settings.
	General *GeneralConfig `toml:"general" json:"general"`
	// Scripts maps a script name to its definition. Each named script can be
	// generated via the CLI (by name) or served over HTTP.
	Scripts map[string]*ScriptConfig `toml:"script,omitempty" json:"script,omitempty"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// DatetimeFormat is the Go reference layout used for the generation
	// timestamp in the script header.
	DatetimeFormat string `toml:"datetime_format" json:"datetime_format"`
	// FileEncoding is the encoding of input and output files. Only "utf-8"
	// is supported.
	FileEncoding string `toml:"file_encoding" json:"file_encoding" validate:"omitempty,oneof=utf-8 UTF-8"`
	// APIBindAddress is the listen address for the HTTP server (default: 0.0.0.0:8080).
	APIBindAddress string `toml:"api_bind_address" json:"api_bind_address"`
	// DownloadDir is the directory for downloaded remote sources, relative to the config dir.
	DownloadDir string `toml:"download_dir" json:"download_dir"`
}

// ScriptConfig describes one named address-list script.
type ScriptConfig struct {
	// URL is the remote source of the IP list (exactly one of url/file must be set).
	URL string `toml:"url,omitempty" json:"url,omitempty" validate:"omitempty,url"`
	// File is the local source of the IP list.
	File string `toml:"file,omitempty" json:"file,omitempty"`
	// ListName is the firewall address-list name used in the generated commands.
	ListName string `toml:"list_name" json:"list_name" validate:"required"`
	// Header lines are appended to the boxed comment header of the script.
	Header []string `toml:"header,omitempty" json:"header,omitempty"`
	// Comment is attached to every generated address-list entry.
	Comment string `toml:"comment,omitempty" json:"comment,omitempty"`
	// Timeout in seconds makes entries expire; 0 means no timeout.
	Timeout int `toml:"timeout,omitempty" json:"timeout,omitempty" validate:"gte=0"`
	// LogLevel is the verbosity keyword of the :log statements in the script.
	LogLevel ScriptLogLevel `toml:"log_level,omitempty" json:"log_level,omitempty" validate:"omitempty,oneof=debug info warning error"`
	// NoCatchErrors disables the :onerror wrapper around each add statement.
	NoCatchErrors bool `toml:"no_catch_errors,omitempty" json:"no_catch_errors"`
	// NoIPv4 excludes IPv4 entries.
	NoIPv4 bool `toml:"no_ipv4,omitempty" json:"no_ipv4"`
	// NoIPv6 excludes IPv6 entries.
	NoIPv6 bool `toml:"no_ipv6,omitempty" json:"no_ipv6"`
	// Dynamic marks entries as dynamic=yes.
	Dynamic bool `toml:"dynamic,omitempty" json:"dynamic"`
	// Disabled marks entries as disabled=yes.
	Disabled bool `toml:"disabled,omitempty" json:"disabled"`
}

func (c *Config) GetConfigDir() string {
	return filepath.Dir(c._absConfigFilePath)
}

func (c *Config) GetAbsDownloadDir() string {
	return utils.GetAbsolutePath(c.General.DownloadDir, c.GetConfigDir())
}

// ScriptByName returns the named script definition or a CONFIG_ERROR if it
// does not exist.
func (c *Config) ScriptByName(name string) (*ScriptConfig, error) {
	if script, ok := c.Scripts[name]; ok {
		return script, nil
	}
	return nil, errors.NewConfigError("script configuration \""+name+"\" not found", nil)
}

// ScriptNames returns the configured script names in sorted order.
func (c *Config) ScriptNames() []string {
	names := make([]string, 0, len(c.Scripts))
	for name := range c.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
