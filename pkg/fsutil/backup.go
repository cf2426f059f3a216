package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupSuffix is appended to a file name to form its backup path.
const BackupSuffix = ".wikispan.bak"

// BackupPath returns where the backup of path is kept.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// Backup copies the snapshotted content of a file next to it, unless a backup
// already exists. Existing backups are never overwritten, so repeated runs
// keep the oldest content. It reports whether a backup was written.
func Backup(ctx context.Context, snap *Snapshot, content []byte) (bool, error) {
	backup := BackupPath(snap.Path)

	_, err := os.Stat(backup)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteAtomic(ctx, backup, content, snap.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// Restore copies a backup over its original file and removes the backup.
// It reports false when there is no backup.
func Restore(ctx context.Context, path string) (bool, error) {
	backup := BackupPath(path)

	content, snap, err := ReadFile(ctx, backup)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	if err := os.Remove(backup); err != nil {
		return true, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}
