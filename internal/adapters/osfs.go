// Package adapters wires the domain.FS and domain.Logger ports to real
// infrastructure: the host filesystem and a structured logger.
package adapters

import (
	"context"
	"io/fs"
	"os"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// OSFilesystem implements domain.FS against the host filesystem via the
// os package.
type OSFilesystem struct{}

// NewOSFilesystem constructs an OSFilesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// Stat returns file information, following symlinks.
func (f *OSFilesystem) Stat(ctx context.Context, name string) (domain.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}

	return WrapFileInfo(info), nil
}

// Lstat returns file information without following a trailing symlink.
func (f *OSFilesystem) Lstat(ctx context.Context, name string) (domain.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Lstat(name)
	if err != nil {
		return nil, err
	}

	return WrapFileInfo(info), nil
}

// ReadDir lists directory contents.
func (f *OSFilesystem) ReadDir(ctx context.Context, name string) ([]domain.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, err
	}

	result := make([]domain.DirEntry, len(entries))
	for i, entry := range entries {
		result[i] = WrapDirEntry(entry)
	}

	return result, nil
}

// ReadLink reads the target of a symbolic link.
func (f *OSFilesystem) ReadLink(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return os.Readlink(name)
}

// ReadFile reads an entire file into memory.
func (f *OSFilesystem) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(name)
}

// WriteFile writes data to a file, creating it if necessary.
func (f *OSFilesystem) WriteFile(ctx context.Context, name string, data []byte, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.WriteFile(name, data, perm)
}

// Mkdir creates a single directory.
func (f *OSFilesystem) Mkdir(ctx context.Context, name string, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Mkdir(name, perm)
}

// MkdirAll creates a directory along with any missing ancestors.
func (f *OSFilesystem) MkdirAll(ctx context.Context, name string, perm fs.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.MkdirAll(name, perm)
}

// Remove removes a file or an empty directory.
func (f *OSFilesystem) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Remove(name)
}

// RemoveAll removes a path and any children it contains.
func (f *OSFilesystem) RemoveAll(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.RemoveAll(name)
}

// Symlink creates newname as a symbolic link to oldname.
func (f *OSFilesystem) Symlink(ctx context.Context, oldname, newname string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Symlink(oldname, newname)
}

// Rename moves oldname to newname, replacing newname if the platform's
// rename semantics allow it.
func (f *OSFilesystem) Rename(ctx context.Context, oldname, newname string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Rename(oldname, newname)
}

// Exists reports whether a path can be stat'd at all.
func (f *OSFilesystem) Exists(ctx context.Context, name string) bool {
	if err := ctx.Err(); err != nil {
		return false
	}

	_, err := os.Stat(name)
	return err == nil
}

// IsDir reports whether path, followed through symlinks, names a
// directory.
func (f *OSFilesystem) IsDir(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(name)
	if err != nil {
		return false, err
	}

	return info.IsDir(), nil
}

// IsSymlink reports whether path itself is a symbolic link.
func (f *OSFilesystem) IsSymlink(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Lstat(name)
	if err != nil {
		return false, err
	}

	return info.Mode()&fs.ModeSymlink != 0, nil
}

// osFileInfo adapts fs.FileInfo to domain.FileInfo.
type osFileInfo struct {
	info fs.FileInfo
}

// WrapFileInfo adapts a standard fs.FileInfo to domain.FileInfo.
func WrapFileInfo(info fs.FileInfo) domain.FileInfo {
	return osFileInfo{info: info}
}

func (i osFileInfo) Name() string      { return i.info.Name() }
func (i osFileInfo) Size() int64       { return i.info.Size() }
func (i osFileInfo) Mode() fs.FileMode { return i.info.Mode() }
func (i osFileInfo) ModTime() any      { return i.info.ModTime() }
func (i osFileInfo) IsDir() bool       { return i.info.IsDir() }
func (i osFileInfo) Sys() any          { return i.info.Sys() }

// osDirEntry adapts fs.DirEntry to domain.DirEntry.
type osDirEntry struct {
	entry fs.DirEntry
}

// WrapDirEntry adapts a standard fs.DirEntry to domain.DirEntry.
func WrapDirEntry(entry fs.DirEntry) domain.DirEntry {
	return osDirEntry{entry: entry}
}

func (e osDirEntry) Name() string      { return e.entry.Name() }
func (e osDirEntry) IsDir() bool       { return e.entry.IsDir() }
func (e osDirEntry) Type() fs.FileMode { return e.entry.Type() }

func (e osDirEntry) Info() (domain.FileInfo, error) {
	info, err := e.entry.Info()
	if err != nil {
		return nil, err
	}
	return WrapFileInfo(info), nil
}
