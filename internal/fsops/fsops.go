// Package fsops implements the narrow FS-primitive surface spec §4.2
// defines on top of domain.FS: symlink creation/inspection, empty-directory
// checks, and parent-directory creation. Platform privilege detection for
// symlink creation is split into fsops_windows.go / fsops_unix.go.
package fsops

import (
	"context"
	"path/filepath"

	"github.com/MathiasCodes/winstow/internal/domain"
)

func parentOf(path string) string {
	parent := filepath.Dir(path)
	if parent == path {
		return ""
	}
	return parent
}

// IsSymlink reports whether path is a symlink, false on any stat error —
// spec §4.2: "false on any error".
func IsSymlink(ctx context.Context, fs domain.FS, path string) bool {
	ok, err := fs.IsSymlink(ctx, path)
	if err != nil {
		return false
	}
	return ok
}

// IsDirectory stats path following symlinks; I/O errors surface.
func IsDirectory(ctx context.Context, fs domain.FS, path string) (bool, error) {
	info, err := fs.Stat(ctx, path)
	if err != nil {
		return false, &domain.IOError{Path: path, Err: err}
	}
	return info.IsDir(), nil
}

// ReadSymlink returns the raw (possibly relative) symlink target.
func ReadSymlink(ctx context.Context, fs domain.FS, path string) (string, error) {
	target, err := fs.ReadLink(ctx, path)
	if err != nil {
		return "", &domain.IOError{Path: path, Err: err}
	}
	return target, nil
}

// IsEmptyDirectory reports false if path is not a directory, else whether
// it has zero entries.
func IsEmptyDirectory(ctx context.Context, fs domain.FS, path string) (bool, error) {
	isDir, err := fs.IsDir(ctx, path)
	if err != nil || !isDir {
		return false, nil
	}

	entries, err := fs.ReadDir(ctx, path)
	if err != nil {
		return false, &domain.IOError{Path: path, Err: err}
	}
	return len(entries) == 0, nil
}

// RemoveEmptyDirectory deletes path if and only if it is empty, otherwise
// returns DirectoryNotEmptyError.
func RemoveEmptyDirectory(ctx context.Context, fs domain.FS, path string) error {
	empty, err := IsEmptyDirectory(ctx, fs, path)
	if err != nil {
		return err
	}
	if !empty {
		return &domain.DirectoryNotEmptyError{Path: path}
	}
	if err := fs.Remove(ctx, path); err != nil {
		return &domain.IOError{Path: path, Err: err}
	}
	return nil
}

// EnsureParentDirs creates any missing ancestor directories of path.
func EnsureParentDirs(ctx context.Context, fs domain.FS, path string) error {
	parent := parentOf(path)
	if parent == "" || fs.Exists(ctx, parent) {
		return nil
	}
	if err := fs.MkdirAll(ctx, parent, 0o755); err != nil {
		return &domain.IOError{Path: parent, Err: err}
	}
	return nil
}
