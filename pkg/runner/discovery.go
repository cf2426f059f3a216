package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover lists the files selected by opts as sorted, deduplicated
// absolute paths. Files named explicitly are taken regardless of their
// extension; inside directories only files with a matching extension are
// picked. Hidden files and directories are skipped while walking.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileExcludes(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	walker := &walker{
		ctx:      ctx,
		workDir:  workDir,
		opts:     opts,
		exts:     opts.effectiveExtensions(),
		excludes: excludes,
		seen:     make(map[string]struct{}),
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if !walker.excluded(abs) {
				walker.add(abs)
			}
			continue
		}
		if err := walker.walk(abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(walker.files)
	return walker.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

type walker struct {
	ctx      context.Context
	workDir  string
	opts     Options
	exts     []string
	excludes *excludeSet
	seen     map[string]struct{}
	files    []string
}

func (w *walker) add(file string) {
	if _, ok := w.seen[file]; ok {
		return
	}
	w.seen[file] = struct{}{}
	w.files = append(w.files, file)
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(file string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := file != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (file != root && w.excluded(file)) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(file)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				// WalkDir does not follow the link itself, so the target is
				// walked directly.
				return w.walk(target)
			}
		}

		if hasExtension(file, w.exts) && !w.excluded(file) {
			w.add(file)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// excluded matches file against the exclude globs, relative to the working
// directory.
func (w *walker) excluded(file string) bool {
	rel, err := filepath.Rel(w.workDir, file)
	if err != nil {
		rel = file
	}
	return w.excludes.match(filepath.ToSlash(rel))
}

func hasExtension(file string, exts []string) bool {
	ext := filepath.Ext(file)
	for _, candidate := range exts {
		if strings.EqualFold(candidate, ext) {
			return true
		}
	}
	return false
}
