// Package adopt implements spec §4.4's conflict-resolution primitives:
// pulling a pre-existing target file or directory into a package
// (AdoptFile / AdoptDirectory) or discarding it in favor of the package's
// version (OverrideFile). Grounded on original_source/src/adopt.rs.
package adopt

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/MathiasCodes/winstow/internal/domain"
	"github.com/MathiasCodes/winstow/internal/fsops"
)

// AdoptFile moves targetFile into the package at packageFile. targetFile
// must exist and must not be a symlink. Tries a rename first; on failure
// (e.g. cross-device) falls back to copy+remove. If the copy fallback also
// fails, the original rename error is returned.
func AdoptFile(ctx context.Context, fs domain.FS, log domain.Logger, targetFile, packageFile string, dryRun bool) error {
	if !fs.Exists(ctx, targetFile) {
		return &domain.InvalidPathError{Message: fmt.Sprintf("target file does not exist: %s", targetFile)}
	}
	if fsops.IsSymlink(ctx, fs, targetFile) {
		return &domain.InvalidPathError{Message: fmt.Sprintf("target is already a symlink, cannot adopt: %s", targetFile)}
	}

	log.Info(ctx, "adopt file", "from", targetFile, "to", packageFile)
	if dryRun {
		return nil
	}

	if err := fsops.EnsureParentDirs(ctx, fs, packageFile); err != nil {
		return err
	}
	if err := renameOrCopyFile(ctx, fs, targetFile, packageFile); err != nil {
		return err
	}

	log.Debug(ctx, "adopted file", "path", targetFile)
	return nil
}

// OverrideFile discards targetFile in favor of the package's version.
// Absent targets are a no-op. Symlinks are skipped (never removed here,
// whether foreign or our own).
func OverrideFile(ctx context.Context, fs domain.FS, log domain.Logger, targetFile string, dryRun bool) error {
	if !fs.Exists(ctx, targetFile) {
		return nil
	}
	if fsops.IsSymlink(ctx, fs, targetFile) {
		log.Debug(ctx, "target is a symlink, skipping override", "path", targetFile)
		return nil
	}

	log.Info(ctx, "override (remove) target", "path", targetFile)
	if dryRun {
		return nil
	}

	isDir, err := fs.IsDir(ctx, targetFile)
	if err != nil {
		return &domain.IOError{Path: targetFile, Err: err}
	}
	if isDir {
		if err := fs.RemoveAll(ctx, targetFile); err != nil {
			return &domain.IOError{Path: targetFile, Err: err}
		}
	} else if err := fs.Remove(ctx, targetFile); err != nil {
		return &domain.IOError{Path: targetFile, Err: err}
	}

	log.Debug(ctx, "removed", "path", targetFile)
	return nil
}

// AdoptDirectory moves targetDir into the package at packageDir. If
// packageDir does not yet exist, the whole subtree is moved (rename, or
// recursive copy+remove on failure). If it exists, contents are merged
// depth-first and the emptied targetDir is then removed.
func AdoptDirectory(ctx context.Context, fs domain.FS, log domain.Logger, targetDir, packageDir string, dryRun bool) error {
	if !fs.Exists(ctx, targetDir) {
		return &domain.InvalidPathError{Message: fmt.Sprintf("target directory does not exist: %s", targetDir)}
	}
	if fsops.IsSymlink(ctx, fs, targetDir) {
		return &domain.InvalidPathError{Message: fmt.Sprintf("target is already a symlink, cannot adopt: %s", targetDir)}
	}

	log.Info(ctx, "adopt directory", "from", targetDir, "to", packageDir)
	if dryRun {
		return nil
	}

	if err := fsops.EnsureParentDirs(ctx, fs, packageDir); err != nil {
		return err
	}

	if !fs.Exists(ctx, packageDir) {
		if err := renameOrCopyDir(ctx, fs, targetDir, packageDir); err != nil {
			return err
		}
	} else {
		if err := mergeDirectories(ctx, fs, log, targetDir, packageDir); err != nil {
			return err
		}
		if err := fs.RemoveAll(ctx, targetDir); err != nil {
			return &domain.IOError{Path: targetDir, Err: err}
		}
	}

	log.Debug(ctx, "adopted directory", "path", targetDir)
	return nil
}

// mergeDirectories folds src's contents into dst, recursing into
// same-named subdirectories on both sides. A same-named non-directory
// collision is never silently overwritten: the destination-side entry is
// renamed aside with a uuid-suffixed name and a warning is logged, then
// src's entry takes its place (spec §9's directory-adopt-merge resolution).
func mergeDirectories(ctx context.Context, fs domain.FS, log domain.Logger, src, dst string) error {
	entries, err := fs.ReadDir(ctx, src)
	if err != nil {
		return &domain.IOError{Path: src, Err: err}
	}

	for _, entry := range entries {
		srcPath := joinPath(src, entry.Name())
		dstPath := joinPath(dst, entry.Name())

		if entry.IsDir() {
			if fs.Exists(ctx, dstPath) {
				dstIsDir, err := fs.IsDir(ctx, dstPath)
				if err != nil {
					return &domain.IOError{Path: dstPath, Err: err}
				}
				if !dstIsDir {
					if err := renameAside(ctx, fs, log, dstPath); err != nil {
						return err
					}
					if err := renameOrCopyDir(ctx, fs, srcPath, dstPath); err != nil {
						return err
					}
					continue
				}
				if err := mergeDirectories(ctx, fs, log, srcPath, dstPath); err != nil {
					return err
				}
				continue
			}
			if err := renameOrCopyDir(ctx, fs, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		if fs.Exists(ctx, dstPath) {
			dstIsDir, err := fs.IsDir(ctx, dstPath)
			if err != nil {
				return &domain.IOError{Path: dstPath, Err: err}
			}
			if dstIsDir {
				if err := renameAside(ctx, fs, log, dstPath); err != nil {
					return err
				}
			} else {
				if err := renameAside(ctx, fs, log, dstPath); err != nil {
					return err
				}
			}
		}
		if err := renameOrCopyFile(ctx, fs, srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

// renameAside moves an existing destination-side entry out of the way
// before a colliding source-side entry takes its place.
func renameAside(ctx context.Context, fs domain.FS, log domain.Logger, path string) error {
	aside := fmt.Sprintf("%s.adopt-conflict-%s", path, uuid.NewString())
	log.Warn(ctx, "adopt merge collision, renaming target aside", "path", path, "renamed_to", aside)
	if err := fs.Rename(ctx, path, aside); err != nil {
		return &domain.IOError{Path: path, Err: err}
	}
	return nil
}

func joinPath(dir, name string) string {
	return filepath.Join(dir, name)
}
