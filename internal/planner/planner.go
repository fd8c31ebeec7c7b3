// Package planner implements spec §4.5/§4.6: the two-pass traversal that
// decides, for each package entry, whether to fold it into a single
// directory symlink, traverse into an existing real directory, unfold a
// conflicting prior symlink, or resolve a conflict — and the mirror-image
// traversal that plans a package's removal. Grounded on
// original_source/src/stow.rs and src/unstow.rs.
package planner

import (
	"path/filepath"

	"github.com/MathiasCodes/winstow/internal/domain"
	"github.com/MathiasCodes/winstow/internal/ignore"
	"github.com/MathiasCodes/winstow/internal/pathutil"
)

// Planner builds Plans for stow and unstow operations against one
// stow/target directory pair.
type Planner struct {
	fs        domain.FS
	log       domain.Logger
	stowDir   string
	targetDir string
	strategy  domain.ConflictStrategy
	dryRun    bool
	patterns  *ignore.PatternSet
}

// New constructs a Planner. patterns may be nil, equivalent to an empty
// pattern set.
func New(fs domain.FS, log domain.Logger, stowDir, targetDir string, strategy domain.ConflictStrategy, dryRun bool, patterns *ignore.PatternSet) *Planner {
	return &Planner{
		fs:        fs,
		log:       log,
		stowDir:   stowDir,
		targetDir: targetDir,
		strategy:  strategy,
		dryRun:    dryRun,
		patterns:  patterns,
	}
}

// foldDecision is the verdict decideFold reaches for a package subdirectory
// entry.
type foldDecision int

const (
	foldDecisionFold foldDecision = iota
	foldDecisionUnfold
	foldDecisionTraverse
	foldDecisionConflict
)

// linkTargetAbs resolves a symlink's (possibly relative) raw target to an
// absolute path, relative to the link's own parent directory.
func linkTargetAbs(link, rawTarget string) string {
	if filepath.IsAbs(rawTarget) {
		return rawTarget
	}
	return filepath.Join(filepath.Dir(link), rawTarget)
}

// relativeLinkTarget computes the relative symlink target spec §4.5
// requires: the path from link's parent directory to src.
func relativeLinkTarget(link, src string) (string, error) {
	srcNorm, err := pathutil.Normalize(src)
	if err != nil {
		return "", &domain.InvalidPathError{Message: err.Error()}
	}
	parentAbs, err := pathutil.Normalize(filepath.Dir(link))
	if err != nil {
		return "", &domain.InvalidPathError{Message: err.Error()}
	}
	rel, err := pathutil.Relative(parentAbs, srcNorm)
	if err != nil {
		return "", &domain.InvalidPathError{Message: err.Error()}
	}
	return rel, nil
}
