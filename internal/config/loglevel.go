package config

import "fmt"

// ScriptLogLevel is the verbosity keyword emitted into generated :log
// statements. It is shared by the configuration layer, the CLI flag and the
// script renderer.
type ScriptLogLevel string

const (
	ScriptLogDebug   ScriptLogLevel = "debug"
	ScriptLogInfo    ScriptLogLevel = "info"
	ScriptLogWarning ScriptLogLevel = "warning"
	ScriptLogError   ScriptLogLevel = "error"
)

// ParseScriptLogLevel parses a log level keyword.
func ParseScriptLogLevel(s string) (ScriptLogLevel, error) {
	switch ScriptLogLevel(s) {
	case ScriptLogDebug, ScriptLogInfo, ScriptLogWarning, ScriptLogError:
		return ScriptLogLevel(s), nil
	}
	return "", fmt.Errorf("invalid script log level %q (must be one of: debug, info, warning, error)", s)
}

func (l ScriptLogLevel) String() string {
	return string(l)
}
