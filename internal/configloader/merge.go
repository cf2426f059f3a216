package configloader

import "github.com/yaklabco/wikispan/pkg/config"

// merge combines two configurations, override taking precedence.
// Non-zero scalars in override win; non-nil slices in override replace the
// base slice entirely.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.MatchTimeout != 0 {
		result.MatchTimeout = override.MatchTimeout
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = true
	}

	replace(&result.Tags.Parsable, override.Tags.Parsable)
	replace(&result.Tags.Unparsable, override.Tags.Unparsable)
	replace(&result.ParserFunctions, override.ParserFunctions)
	replace(&result.Extensions, override.Extensions)
	replace(&result.Ignore, override.Ignore)

	return result
}

func replace(dst *[]string, src []string) {
	if src != nil {
		*dst = append([]string(nil), src...)
	}
}
