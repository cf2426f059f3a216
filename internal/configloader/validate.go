package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/wikispan/pkg/config"
)

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	// Field is the YAML path of the value, e.g. "tags.unparsable".
	Field string

	// Value is the offending value.
	Value any

	// Message describes the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult holds all findings of Validate.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// deepNestingWarning is the depth above which a warning is issued.
const deepNestingWarning = 4096

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	switch {
	case cfg.MaxDepth < 0:
		result.fail("max_depth", cfg.MaxDepth, "must be >= 0 (0 means the default)")
	case cfg.MaxDepth > deepNestingWarning:
		result.warn("max_depth", cfg.MaxDepth, "limit %d allows very deep recursion", cfg.MaxDepth)
	}

	if cfg.MatchTimeout < 0 {
		result.fail("match_timeout", cfg.MatchTimeout, "must not be negative")
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "must be >= 0 (0 means auto)")
	}
	if _, err := config.ParseFormat(string(cfg.Format)); err != nil {
		result.fail("format", cfg.Format, "%v", err)
	}

	for _, name := range cfg.Tags.Parsable {
		if slices.Contains(cfg.Tags.Unparsable, name) {
			result.fail("tags", name, "tag %q is listed as both parsable and unparsable", name)
		}
	}
	for _, list := range []struct {
		field string
		names []string
	}{
		{"tags.parsable", cfg.Tags.Parsable},
		{"tags.unparsable", cfg.Tags.Unparsable},
		{"parser_functions", cfg.ParserFunctions},
	} {
		for _, name := range list.names {
			if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "<>{}|[] \t\n") {
				result.fail(list.field, name, "invalid name %q", name)
			}
		}
	}

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.fail("extensions", ext, "extension %q must start with a dot", ext)
		}
	}
	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.fail("ignore", pattern, "invalid glob %q: %v", pattern, err)
		}
	}

	return result
}
