package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies how the spans command prints its results.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat returns the OutputFormat called name, ignoring case.
func ParseFormat(name string) (OutputFormat, error) {
	switch format := OutputFormat(strings.ToLower(strings.TrimSpace(name))); format {
	case FormatText, FormatYAML:
		return format, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected text or yaml)", name)
	}
}
