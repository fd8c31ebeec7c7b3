//go:build windows

package fsops

import (
	"context"
	"errors"

	"golang.org/x/sys/windows"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// CreateSymlink creates a symbolic link at link pointing at target. On
// Windows, symlink creation can be refused by policy (no Developer Mode,
// not elevated); that specific failure is surfaced as
// domain.PermissionDeniedError with a remediation hint, per spec §6's
// platform note and original_source/src/fs_ops.rs's ERROR_PRIVILEGE_NOT_HELD
// mapping.
func CreateSymlink(ctx context.Context, fs domain.FS, link, target string, isDir bool) error {
	if err := EnsureParentDirs(ctx, fs, link); err != nil {
		return err
	}

	if err := fs.Symlink(ctx, target, link); err != nil {
		if errors.Is(err, windows.ERROR_PRIVILEGE_NOT_HELD) {
			return &domain.PermissionDeniedError{Path: link}
		}
		return &domain.SymlinkError{Path: link, Message: err.Error()}
	}
	return nil
}
