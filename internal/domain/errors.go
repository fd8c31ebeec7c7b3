// Package domain holds the core types and errors of the stow planner,
// independent of any CLI, config, or filesystem adapter.
package domain

import "fmt"

// PermissionDeniedError indicates the OS refused to create a symlink.
type PermissionDeniedError struct {
	Path string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: cannot create symlink at %q", e.Path)
}

// ConflictError indicates a non-symlink (or foreign symlink) occupies a path
// the planner needs, under strategy Fail.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists and is not a symlink pointing to the package", e.Path)
}

// PackageNotFoundError indicates the named package does not exist in the
// stow directory. A package path that exists but is not a directory is
// reported as an InvalidPathError instead.
type PackageNotFoundError struct {
	Package string
	StowDir string
}

func (e *PackageNotFoundError) Error() string {
	return fmt.Sprintf("package %q does not exist in stow directory %q", e.Package, e.StowDir)
}

// InvalidPathError is a usage-level error (exit code 2).
type InvalidPathError struct {
	Message string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path: %s", e.Message)
}

// SymlinkError wraps any non-permission symlink failure.
type SymlinkError struct {
	Path    string
	Message string
}

func (e *SymlinkError) Error() string {
	return fmt.Sprintf("symlink operation failed at %s: %s", e.Path, e.Message)
}

// IOError wraps an underlying filesystem I/O error.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error at %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DirectoryNotEmptyError indicates remove_empty_directory was asked to
// remove a directory that still has entries.
type DirectoryNotEmptyError struct {
	Path string
}

func (e *DirectoryNotEmptyError) Error() string {
	return fmt.Sprintf("directory is not empty: %s", e.Path)
}

// ConfigError indicates a startup-time configuration problem.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// PatternError indicates an ignore/defer pattern failed to compile.
type PatternError struct {
	Message string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern: %s", e.Message)
}

// UserFacingError strips an error down to actionable, non-technical text.
// PermissionDenied gets the Developer Mode / Administrator hint, Conflict
// gets the --adopt/--override remediation list, PackageNotFound gets a
// one-line message; everything else falls back to its own Error() string.
func UserFacingError(err error) string {
	switch e := err.(type) {
	case *PermissionDeniedError:
		return fmt.Sprintf(
			"Permission denied: %s\n\nTo create symbolic links on Windows, you need to either:\n"+
				"  - Enable Developer Mode (Settings > Update & Security > For developers)\n"+
				"  - Run this program as Administrator",
			e.Path,
		)
	case *ConflictError:
		return fmt.Sprintf(
			"Conflict: %s\n\nTo resolve this conflict, you can:\n"+
				"  - Use --adopt to move the existing file into the package\n"+
				"  - Use --override to replace the existing file (destructive)\n"+
				"  - Manually remove or relocate the conflicting file",
			e.Error(),
		)
	case *PackageNotFoundError:
		return fmt.Sprintf("Package %q not found in stow directory %q.", e.Package, e.StowDir)
	default:
		return err.Error()
	}
}
