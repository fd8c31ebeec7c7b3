package adopt

import (
	"context"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// renameOrCopyFile tries a plain rename first; on failure (e.g.
// cross-device) falls back to copy+remove. If the fallback also fails,
// the original rename error is returned — per
// original_source/src/adopt.rs.
func renameOrCopyFile(ctx context.Context, fs domain.FS, src, dst string) error {
	renameErr := fs.Rename(ctx, src, dst)
	if renameErr == nil {
		return nil
	}

	if err := copyFile(ctx, fs, src, dst); err != nil {
		return &domain.IOError{Path: src, Err: renameErr}
	}
	if err := fs.Remove(ctx, src); err != nil {
		return &domain.IOError{Path: src, Err: err}
	}
	return nil
}

// renameOrCopyDir tries a plain rename first; on failure falls back to a
// recursive copy+remove. If the fallback also fails, the original rename
// error is returned.
func renameOrCopyDir(ctx context.Context, fs domain.FS, src, dst string) error {
	renameErr := fs.Rename(ctx, src, dst)
	if renameErr == nil {
		return nil
	}

	if err := copyDirRecursive(ctx, fs, src, dst); err != nil {
		return &domain.IOError{Path: src, Err: renameErr}
	}
	if err := fs.RemoveAll(ctx, src); err != nil {
		return &domain.IOError{Path: src, Err: err}
	}
	return nil
}

func copyFile(ctx context.Context, fs domain.FS, src, dst string) error {
	data, err := fs.ReadFile(ctx, src)
	if err != nil {
		return &domain.IOError{Path: src, Err: err}
	}
	info, err := fs.Stat(ctx, src)
	if err != nil {
		return &domain.IOError{Path: src, Err: err}
	}
	if err := fs.WriteFile(ctx, dst, data, info.Mode().Perm()); err != nil {
		return &domain.IOError{Path: dst, Err: err}
	}
	return nil
}

func copyDirRecursive(ctx context.Context, fs domain.FS, src, dst string) error {
	if err := fs.MkdirAll(ctx, dst, 0o755); err != nil {
		return &domain.IOError{Path: dst, Err: err}
	}

	entries, err := fs.ReadDir(ctx, src)
	if err != nil {
		return &domain.IOError{Path: src, Err: err}
	}

	for _, entry := range entries {
		srcPath := joinPath(src, entry.Name())
		dstPath := joinPath(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDirRecursive(ctx, fs, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(ctx, fs, srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}
