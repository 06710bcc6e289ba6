// Package source resolves a script's input (local file path or remote URL)
// to a readable local file before generation runs. The generator itself
// never performs network I/O.
package source

import (
	"fmt"
	"strings"

	"github.com/JuliusKoenig/mikrotik-addresslist/internal/config"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/errors"
	"github.com/JuliusKoenig/mikrotik-addresslist/internal/utils"
)

type Kind int

const (
	// Local is a path on the local filesystem.
	Local Kind = iota
	// Remote is an HTTP(S) URL that must be downloaded first.
	Remote
)

// Source is a tagged variant of the two input kinds.
type Source struct {
	Kind Kind
	// Path is set for Local sources.
	Path string
	// URL is set for Remote sources.
	URL string
}

func (s Source) String() string {
	if s.Kind == Remote {
		return s.URL
	}
	return s.Path
}

// Parse classifies a raw source string as a URL or a local path.
// An empty string yields an INPUT_ERROR.
func Parse(raw string) (Source, error) {
	if raw == "" {
		return Source{}, errors.NewInputError("either a local file or a URL must be provided")
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return Source{Kind: Remote, URL: raw}, nil
	}
	return Source{Kind: Local, Path: raw}, nil
}

// FromScript builds a Source from a script definition.
func FromScript(script *config.ScriptConfig) (Source, error) {
	if script.URL != "" {
		return Source{Kind: Remote, URL: script.URL}, nil
	}
	if script.File != "" {
		return Source{Kind: Local, Path: script.File}, nil
	}
	return Source{}, errors.NewInputError("either a local file or a URL must be provided")
}

// Resolve returns a readable local path for the source. Remote sources are
// downloaded into downloadDir under the given name; local sources are
// verified to be regular files.
func Resolve(src Source, name string, downloadDir string) (string, error) {
	switch src.Kind {
	case Remote:
		return Download(src.URL, name, downloadDir)
	default:
		if !utils.IsRegularFile(src.Path) {
			return "", errors.NewSourceNotFoundError(
				fmt.Sprintf("source file \"%s\" does not exist or is not a regular file", src.Path))
		}
		return src.Path, nil
	}
}
