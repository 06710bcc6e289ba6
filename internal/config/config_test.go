package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return configFile
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/file.toml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	configFile := writeConfigFile(t, `[general
datetime_format = "02.01.2006"`)

	if _, err := LoadConfig(configFile); err == nil {
		t.Error("Expected error for invalid TOML")
	}
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configFile := writeConfigFile(t, `[general]
datetime_format = "02.01.2006 - 15:04:05"

[script.blocklist]
url = "https://example.com/list.txt"
list_name = "blocklist"
timeout = 300
log_level = "info"
dynamic = true`)

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error for valid config: %v", err)
	}

	script, err := cfg.ScriptByName("blocklist")
	if err != nil {
		t.Fatalf("Expected script to be present: %v", err)
	}
	if script.ListName != "blocklist" {
		t.Errorf("Expected list_name 'blocklist', got %s", script.ListName)
	}
	if script.Timeout != 300 {
		t.Errorf("Expected timeout 300, got %d", script.Timeout)
	}
	if script.LogLevel != ScriptLogInfo {
		t.Errorf("Expected log_level info, got %s", script.LogLevel)
	}
	if !script.Dynamic {
		t.Error("Expected dynamic to be true")
	}
}

func TestLoadConfig_DefaultsApplied(t *testing.T) {
	configFile := writeConfigFile(t, `[script.test]
file = "./list.txt"
list_name = "test"`)

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}

	if cfg.General.DatetimeFormat != DefaultDatetimeFormat {
		t.Errorf("Expected default datetime format, got %s", cfg.General.DatetimeFormat)
	}
	if cfg.General.APIBindAddress != DefaultBindAddress {
		t.Errorf("Expected default bind address, got %s", cfg.General.APIBindAddress)
	}
	if cfg.Scripts["test"].LogLevel != ScriptLogDebug {
		t.Errorf("Expected default log level debug, got %s", cfg.Scripts["test"].LogLevel)
	}
}

func TestScriptByName_Unknown(t *testing.T) {
	cfg := &Config{Scripts: map[string]*ScriptConfig{}}

	_, err := cfg.ScriptByName("missing")
	if err == nil {
		t.Error("Expected error for unknown script name")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("Expected script name in error, got: %v", err)
	}
}

func TestValidate_MissingListName(t *testing.T) {
	cfg := &Config{
		General: &GeneralConfig{},
		Scripts: map[string]*ScriptConfig{
			"bad": {URL: "https://example.com/list.txt"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for missing list_name")
	}
	if !strings.Contains(err.Error(), "list_name") {
		t.Errorf("Expected list_name in error, got: %v", err)
	}
}

func TestValidate_BothSourcesConfigured(t *testing.T) {
	cfg := &Config{
		General: &GeneralConfig{},
		Scripts: map[string]*ScriptConfig{
			"bad": {
				URL:      "https://example.com/list.txt",
				File:     "/tmp/list.txt",
				ListName: "bad",
			},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for two sources")
	}
	if !strings.Contains(err.Error(), "can only specify one of") {
		t.Errorf("Unexpected validation message: %v", err)
	}
}

func TestValidate_NoSourceConfigured(t *testing.T) {
	cfg := &Config{
		General: &GeneralConfig{},
		Scripts: map[string]*ScriptConfig{
			"bad": {ListName: "bad"},
		},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error for missing source")
	}
	if !strings.Contains(err.Error(), "must specify one of") {
		t.Errorf("Unexpected validation message: %v", err)
	}
}

func TestValidate_FileResolvedRelativeToConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	listFile := filepath.Join(tmpDir, "list.txt")
	if err := os.WriteFile(listFile, []byte("10.0.0.0/24\n"), 0644); err != nil {
		t.Fatalf("Failed to write list file: %v", err)
	}
	configFile := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configFile, []byte(`[script.local]
file = "./list.txt"
list_name = "local"`), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no load error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected no validation error: %v", err)
	}
	if cfg.Scripts["local"].File != listFile {
		t.Errorf("Expected file resolved to %s, got %s", listFile, cfg.Scripts["local"].File)
	}
}

func TestSerializeConfig(t *testing.T) {
	cfg := &Config{
		General: &GeneralConfig{DatetimeFormat: DefaultDatetimeFormat},
		Scripts: map[string]*ScriptConfig{
			"test": {URL: "https://example.com/list.txt", ListName: "test"},
		},
	}

	buf, err := cfg.SerializeConfig()
	if err != nil {
		t.Fatalf("Failed to serialize config: %v", err)
	}

	content := buf.String()
	if !strings.Contains(content, "list_name = 'test'") && !strings.Contains(content, `list_name = "test"`) {
		t.Errorf("Expected serialized script in output, got: %s", content)
	}
}

func TestParseScriptLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    ScriptLogLevel
		wantErr bool
	}{
		{input: "debug", want: ScriptLogDebug},
		{input: "info", want: ScriptLogInfo},
		{input: "warning", want: ScriptLogWarning},
		{input: "error", want: ScriptLogError},
		{input: "trace", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScriptLogLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
