// Package pathutil implements the three path operations the planner core
// depends on: Normalize, Relative, and PathsEqual (spec §4.1). Platform
// case-sensitivity is the only thing that leaks in here; see
// original_source/src/path_utils.rs for the reference implementation this
// is grounded on.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// Normalize returns an absolute, canonical form of p: symlinks resolved,
// "."/".." eliminated. If p does not exist, canonicalization is skipped and
// the path is simply made absolute against the current working directory —
// Normalize never fails because a path doesn't exist.
func Normalize(p string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		abs, err := filepath.Abs(resolved)
		if err != nil {
			return "", &domain.IOError{Path: p, Err: err}
		}
		return abs, nil
	}

	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", &domain.IOError{Path: p, Err: err}
	}
	return filepath.Clean(filepath.Join(cwd, p)), nil
}

// Relative computes the relative path from `from` to `to`: both must be
// absolute. It walks the longest common component prefix, emits one ".."
// per remaining `from` component, then appends `to`'s trailing components.
func Relative(from, to string) (string, error) {
	if !filepath.IsAbs(from) || !filepath.IsAbs(to) {
		return "", &domain.InvalidPathError{
			Message: "both 'from' and 'to' paths must be absolute for relative path computation",
		}
	}

	fromNorm, err := Normalize(from)
	if err != nil {
		return "", err
	}
	toNorm, err := Normalize(to)
	if err != nil {
		return "", err
	}

	fromParts := splitComponents(fromNorm)
	toParts := splitComponents(toNorm)

	common := 0
	for common < len(fromParts) && common < len(toParts) && componentsEqual(fromParts[common], toParts[common]) {
		common++
	}

	upCount := len(fromParts) - common
	segments := make([]string, 0, upCount+len(toParts)-common)
	for i := 0; i < upCount; i++ {
		segments = append(segments, "..")
	}
	segments = append(segments, toParts[common:]...)

	if len(segments) == 0 {
		return ".", nil
	}
	return filepath.Join(segments...), nil
}

// PathsEqual normalizes both paths and compares them component-wise, using
// case-insensitive comparison on Windows and case-sensitive comparison
// elsewhere.
func PathsEqual(a, b string) bool {
	aNorm, errA := Normalize(a)
	if errA != nil {
		aNorm = a
	}
	bNorm, errB := Normalize(b)
	if errB != nil {
		bNorm = b
	}

	aParts := splitComponents(aNorm)
	bParts := splitComponents(bNorm)
	if len(aParts) != len(bParts) {
		return false
	}
	for i := range aParts {
		if !componentsEqual(aParts[i], bParts[i]) {
			return false
		}
	}
	return true
}

// PackagePath resolves name, a user-typed package argument, against root
// (the stow directory) using a path-traversal-safe join: name cannot
// escape root via ".." components or an absolute path, since a malicious
// package name is untrusted CLI input.
func PackagePath(root, name string) (string, error) {
	resolved, err := securejoin.SecureJoin(root, name)
	if err != nil {
		return "", &domain.InvalidPathError{Message: err.Error()}
	}
	return resolved, nil
}

func splitComponents(p string) []string {
	p = filepath.Clean(p)
	volume := filepath.VolumeName(p)
	rest := strings.TrimPrefix(p, volume)
	rest = strings.Trim(rest, string(filepath.Separator))

	parts := []string{}
	if volume != "" {
		parts = append(parts, volume)
	} else if filepath.IsAbs(p) {
		parts = append(parts, string(filepath.Separator))
	}
	if rest != "" {
		parts = append(parts, strings.Split(rest, string(filepath.Separator))...)
	}
	return parts
}

func componentsEqual(a, b string) bool {
	if caseInsensitiveFS {
		return strings.EqualFold(a, b)
	}
	return a == b
}
