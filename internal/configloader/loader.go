// Package configloader resolves the wikispan configuration from defaults,
// the user and project files, an explicit --config file, the environment
// and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/wikispan/internal/logging"
	"github.com/yaklabco/wikispan/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the current directory.
	WorkingDir string

	// ExplicitPath is the file named by --config.
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds values from command-line flags; they win over
	// everything else.
	CLIConfig *config.Config
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load resolves the final configuration. Precedence, highest first:
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (WIKISPAN_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.wikispan.yml, searched upward)
//  5. User config ($XDG_CONFIG_HOME/wikispan/config.yaml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath
	result := &LoadResult{Paths: paths}

	cfg := config.NewConfig()
	for _, source := range []struct {
		path  string
		skip  bool
		label string
	}{
		{paths.User, opts.IgnoreUserConfig, "user"},
		{paths.Project, opts.IgnoreProjectConfig, "project"},
		{paths.Explicit, false, "explicit"},
	} {
		if source.path == "" || source.skip {
			continue
		}
		fileCfg, err := loadConfigFile(source.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", source.label, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, source.path)
		logger.Debug("loaded config", logging.FieldConfig, source.label, logging.FieldPath, source.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, warning := range validation.Warnings {
		result.Warnings = append(result.Warnings, warning.Error())
	}

	logger.Debug("resolved config",
		logging.FieldMaxDepth, cfg.MaxDepth,
		logging.FieldMatchTimeout, cfg.MatchTimeout,
		logging.FieldJobs, cfg.Jobs,
	)

	result.Config = cfg
	return result, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
