package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths holds the configuration files found for a working directory.
// Missing files are empty strings.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/wikispan/config.{yaml,yml}.
	User string

	// Project is the nearest .wikispan.yml at or above the working directory.
	Project string

	// Explicit is the file named by --config.
	Explicit string
}

var projectConfigFiles = []string{
	".wikispan.yml",
	".wikispan.yaml",
	"wikispan.yml",
	"wikispan.yaml",
}

var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the user and project configuration files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{User: findUserConfig(), Project: project}, nil
}

func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	dir := filepath.Join(configHome, "wikispan")
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config
// file. The search stops at a VCS root, the home directory or the
// filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		if startDir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigFiles {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || (home != "" && dir == home) || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
