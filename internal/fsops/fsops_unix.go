//go:build !windows

package fsops

import (
	"context"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// CreateSymlink creates a symbolic link at link pointing at target. isDir
// is unused on platforms where symlinks don't distinguish file vs
// directory targets.
func CreateSymlink(ctx context.Context, fs domain.FS, link, target string, isDir bool) error {
	if err := EnsureParentDirs(ctx, fs, link); err != nil {
		return err
	}

	if err := fs.Symlink(ctx, target, link); err != nil {
		return &domain.SymlinkError{Path: link, Message: err.Error()}
	}
	return nil
}
