package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/wikispan/pkg/config"
)

// envVarPrefix is the prefix of every wikispan environment variable.
const envVarPrefix = "WIKISPAN_"

// envVar describes one environment override.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

var envVars = map[string]envVar{
	"MAX_DEPTH": {
		description: "Nesting limit for templates, links and tags",
		apply: func(cfg *config.Config, value string) error {
			depth, err := strconv.Atoi(value)
			cfg.MaxDepth = depth
			return err
		},
	},
	"MATCH_TIMEOUT": {
		description: "Upper bound for one pattern match, e.g. 500ms",
		apply: func(cfg *config.Config, value string) error {
			timeout, err := time.ParseDuration(value)
			cfg.MatchTimeout = timeout
			return err
		},
	},
	"JOBS": {
		description: "Number of files parsed concurrently (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			cfg.Jobs = jobs
			return err
		},
	},
	"FORMAT": {
		description: "Output format of the spans command: text or yaml",
		apply: func(cfg *config.Config, value string) error {
			format, err := config.ParseFormat(value)
			cfg.Format = format
			return err
		},
	},
	"PARSER_FUNCTIONS": {
		description: "Comma-separated extra parser function names",
		apply: func(cfg *config.Config, value string) error {
			cfg.ParserFunctions = parseSliceValue(value)
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated glob patterns of files to skip",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
}

// LoadFromEnv applies WIKISPAN_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromLookup(cfg, os.LookupEnv)
}

func loadFromLookup(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}
	for _, suffix := range sortedEnvSuffixes() {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("invalid value for %s: %q: %w", name, value, err)
		}
	}
	return nil
}

// parseSliceValue splits a comma-separated list, dropping empty elements.
func parseSliceValue(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[envVarPrefix+suffix] = v.description
	}
	return out
}
