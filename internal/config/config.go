package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/log"
)

const (
	DefaultDatetimeFormat = "02.01.2006 - 15:04:05"
	DefaultFileEncoding   = "utf-8"
	DefaultBindAddress    = "0.0.0.0:8080"
	DefaultDownloadDir    = "downloads.d"
)

// LoadConfig reads and parses the TOML configuration file and applies
// defaults. It does not validate; call Validate separately.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile
	config.applyDefaults()

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Download directory: %s", config.GetAbsDownloadDir())

	return &config, nil
}

// applyDefaults fills unset general fields and per-script defaults.
func (c *Config) applyDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.General.DatetimeFormat == "" {
		c.General.DatetimeFormat = DefaultDatetimeFormat
	}
	if c.General.FileEncoding == "" {
		c.General.FileEncoding = DefaultFileEncoding
	}
	if c.General.APIBindAddress == "" {
		c.General.APIBindAddress = DefaultBindAddress
	}
	if c.General.DownloadDir == "" {
		c.General.DownloadDir = DefaultDownloadDir
	}

	for _, script := range c.Scripts {
		if script.LogLevel == "" {
			script.LogLevel = ScriptLogDebug
		}
	}
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

func (c *Config) WriteConfig() error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c._absConfigFilePath, config.Bytes(), 0644); err != nil {
		return err
	}
	return nil
}
