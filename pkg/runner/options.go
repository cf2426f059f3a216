// Package runner discovers wikitext files, parses them concurrently and
// hands each parsed document to a task.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/wikispan/pkg/config"
	"github.com/yaklabco/wikispan/pkg/wikitext"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors ExcludeGlobs.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions select files inside directories (lowercase, leading dot).
	// Empty means config.DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip matching files and directories. "**" matches any
	// number of path segments.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs is the number of files processed at once. 0 means GOMAXPROCS.
	Jobs int

	// DryRun keeps modified documents in memory instead of writing them.
	DryRun bool

	// Backup saves the original content of a file before it is rewritten.
	Backup bool

	// Parse is passed to wikitext.Parse for every file.
	Parse wikitext.Options
}

// NewOptions derives run options from a resolved configuration.
func NewOptions(cfg *config.Config, paths []string, logger *log.Logger) (Options, error) {
	parse, err := cfg.ParseOptions(logger)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Paths:        paths,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		DryRun:       cfg.DryRun,
		Parse:        parse,
	}, nil
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
