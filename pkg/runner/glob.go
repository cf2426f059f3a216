package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// excludeSet matches slash-separated paths, relative to the working
// directory, against compiled exclude globs. "*" stays inside one path
// segment and "**" crosses segments. A leading "**/" may match nothing and a
// trailing "/**" also matches the directory itself. Patterns without a slash
// are matched against the base name as well.
type excludeSet struct {
	full []glob.Glob
	base []glob.Glob
}

func compileExcludes(patterns []string) (*excludeSet, error) {
	set := &excludeSet{}
	for _, pattern := range patterns {
		clean := strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if clean == "" {
			continue
		}

		variants := []string{clean}
		if rest, ok := strings.CutPrefix(clean, "**/"); ok && rest != "" {
			variants = append(variants, rest)
		}
		if dir, ok := strings.CutSuffix(clean, "/**"); ok && dir != "" {
			variants = append(variants, dir)
		}

		for _, variant := range variants {
			compiled, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			set.full = append(set.full, compiled)
		}

		if !strings.Contains(clean, "/") {
			compiled, err := glob.Compile(clean, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			set.base = append(set.base, compiled)
		}
	}
	return set, nil
}

func (s *excludeSet) match(rel string) bool {
	for _, g := range s.full {
		if g.Match(rel) {
			return true
		}
	}
	name := path.Base(rel)
	for _, g := range s.base {
		if g.Match(name) {
			return true
		}
	}
	return false
}
