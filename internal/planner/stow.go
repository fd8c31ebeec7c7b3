package planner

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MathiasCodes/winstow/internal/adopt"
	"github.com/MathiasCodes/winstow/internal/domain"
	"github.com/MathiasCodes/winstow/internal/fsops"
	"github.com/MathiasCodes/winstow/internal/pathutil"
)

// StowPackage validates that name names a directory under the stow
// directory, then plans (and, for Adopt/Override conflicts, immediately
// performs) the symlinks needed to install it into the target directory.
func (p *Planner) StowPackage(ctx context.Context, name string) (*domain.Plan, error) {
	packagePath, err := pathutil.PackagePath(p.stowDir, name)
	if err != nil {
		return nil, err
	}

	if !p.fs.Exists(ctx, packagePath) {
		return nil, &domain.PackageNotFoundError{Package: name, StowDir: p.stowDir}
	}
	isDir, err := p.fs.IsDir(ctx, packagePath)
	if err != nil {
		return nil, &domain.IOError{Path: packagePath, Err: err}
	}
	if !isDir {
		return nil, &domain.InvalidPathError{Message: fmt.Sprintf("package %q is not a directory", name)}
	}

	p.log.Debug(ctx, "processing package", "package", name)

	plan := &domain.Plan{}
	if err := p.planStowDirectory(ctx, packagePath, p.targetDir, plan); err != nil {
		return nil, err
	}

	p.log.Debug(ctx, "plan built", "package", name, "actions", plan.Len())
	return plan, nil
}

// planStowDirectory visits every entry of sourceDir in directory order,
// skipping ignored entries, and dispatches each to the file or directory
// planner.
func (p *Planner) planStowDirectory(ctx context.Context, sourceDir, targetParent string, plan *domain.Plan) error {
	entries, err := p.fs.ReadDir(ctx, sourceDir)
	if err != nil {
		return &domain.IOError{Path: sourceDir, Err: err}
	}

	for _, entry := range entries {
		sourcePath := filepath.Join(sourceDir, entry.Name())

		if p.patterns.ShouldIgnore(sourcePath) {
			p.log.Debug(ctx, "ignoring", "path", sourcePath)
			continue
		}

		targetPath := filepath.Join(targetParent, entry.Name())

		if entry.IsDir() {
			if err := p.planStowDirItem(ctx, sourcePath, targetPath, plan); err != nil {
				return err
			}
		} else {
			if err := p.planStowFile(ctx, sourcePath, targetPath, plan); err != nil {
				return err
			}
		}
	}

	return nil
}

// planStowFile plans (or resolves a conflict for) a single non-directory
// package entry.
func (p *Planner) planStowFile(ctx context.Context, sourcePath, targetPath string, plan *domain.Plan) error {
	sourceNorm, err := pathutil.Normalize(sourcePath)
	if err != nil {
		return &domain.InvalidPathError{Message: err.Error()}
	}

	if p.fs.Exists(ctx, targetPath) {
		if p.patterns.ShouldDefer(sourcePath) {
			p.log.Debug(ctx, "deferring", "path", sourcePath)
			return nil
		}

		if fsops.IsSymlink(ctx, p.fs, targetPath) {
			rawTarget, err := fsops.ReadSymlink(ctx, p.fs, targetPath)
			if err != nil {
				return err
			}
			linkTargetNorm, err := pathutil.Normalize(linkTargetAbs(targetPath, rawTarget))
			if err != nil {
				return &domain.InvalidPathError{Message: err.Error()}
			}
			if pathutil.PathsEqual(linkTargetNorm, sourceNorm) {
				p.log.Debug(ctx, "already linked", "path", targetPath)
				return nil
			}
		}

		if err := p.resolveConflict(ctx, targetPath, sourcePath, false); err != nil {
			return err
		}
	}

	rel, err := relativeLinkTarget(targetPath, sourceNorm)
	if err != nil {
		return err
	}
	plan.Add(domain.Action{Kind: domain.CreateFileLink, Link: targetPath, RelativeTarget: rel})
	return nil
}

// planStowDirItem plans (or resolves a conflict for) a directory-typed
// package entry: fold it into one symlink, traverse an existing real
// directory, unfold a conflicting prior symlink, or resolve a conflict.
func (p *Planner) planStowDirItem(ctx context.Context, sourcePath, targetPath string, plan *domain.Plan) error {
	if p.fs.Exists(ctx, targetPath) && p.patterns.ShouldDefer(sourcePath) {
		p.log.Debug(ctx, "deferring", "path", sourcePath)
		return nil
	}

	decision, unfoldOriginal, err := p.decideFold(ctx, sourcePath, targetPath)
	if err != nil {
		return err
	}

	sourceNorm, err := pathutil.Normalize(sourcePath)
	if err != nil {
		return &domain.InvalidPathError{Message: err.Error()}
	}

	switch decision {
	case foldDecisionFold:
		rel, err := relativeLinkTarget(targetPath, sourceNorm)
		if err != nil {
			return err
		}
		plan.Add(domain.Action{Kind: domain.CreateDirLink, Link: targetPath, RelativeTarget: rel})

	case foldDecisionUnfold:
		plan.Add(domain.Action{Kind: domain.UnfoldDirLink, Link: targetPath, PriorAbsoluteTarget: unfoldOriginal})
		if err := p.planStowUnfolded(ctx, unfoldOriginal, sourcePath, targetPath, plan); err != nil {
			return err
		}

	case foldDecisionTraverse:
		if err := p.planStowDirectory(ctx, sourcePath, targetPath, plan); err != nil {
			return err
		}

	case foldDecisionConflict:
		if err := p.resolveConflict(ctx, targetPath, sourcePath, true); err != nil {
			return err
		}
		rel, err := relativeLinkTarget(targetPath, sourceNorm)
		if err != nil {
			return err
		}
		plan.Add(domain.Action{Kind: domain.CreateDirLink, Link: targetPath, RelativeTarget: rel})
	}

	return nil
}

// resolveConflict applies the planner's configured ConflictStrategy to an
// existing, non-matching target path. isDir selects AdoptDirectory vs
// AdoptFile for the Adopt strategy.
func (p *Planner) resolveConflict(ctx context.Context, targetPath, sourcePath string, isDir bool) error {
	switch p.strategy {
	case domain.Adopt:
		if isDir {
			return adopt.AdoptDirectory(ctx, p.fs, p.log, targetPath, sourcePath, p.dryRun)
		}
		return adopt.AdoptFile(ctx, p.fs, p.log, targetPath, sourcePath, p.dryRun)
	case domain.Override:
		return adopt.OverrideFile(ctx, p.fs, p.log, targetPath, p.dryRun)
	default:
		return &domain.ConflictError{Path: targetPath}
	}
}

// decideFold classifies an existing (or absent) target path for a
// directory-typed package entry. For foldDecisionUnfold, the prior
// symlink's absolute target is also returned.
func (p *Planner) decideFold(ctx context.Context, sourcePath, targetPath string) (foldDecision, string, error) {
	if !p.fs.Exists(ctx, targetPath) {
		return foldDecisionFold, "", nil
	}

	if fsops.IsSymlink(ctx, p.fs, targetPath) {
		rawTarget, err := fsops.ReadSymlink(ctx, p.fs, targetPath)
		if err != nil {
			return foldDecisionConflict, "", err
		}
		linkTargetAbsPath := linkTargetAbs(targetPath, rawTarget)

		linkTargetNorm, err := pathutil.Normalize(linkTargetAbsPath)
		if err != nil {
			return foldDecisionConflict, "", &domain.InvalidPathError{Message: err.Error()}
		}
		sourceNorm, err := pathutil.Normalize(sourcePath)
		if err != nil {
			return foldDecisionConflict, "", &domain.InvalidPathError{Message: err.Error()}
		}

		if pathutil.PathsEqual(linkTargetNorm, sourceNorm) {
			return foldDecisionFold, "", nil
		}
		return foldDecisionUnfold, linkTargetAbsPath, nil
	}

	isDir, err := fsops.IsDirectory(ctx, p.fs, targetPath)
	if err != nil {
		return foldDecisionConflict, "", err
	}
	if isDir {
		return foldDecisionTraverse, "", nil
	}
	return foldDecisionConflict, "", nil
}

// planStowUnfolded links the contents of both the just-unfolded prior
// target and the new source into targetDir, now a real directory. Only one
// level deep: nested folds within either side are left as-is, per spec
// §9's unfold-scope note.
func (p *Planner) planStowUnfolded(ctx context.Context, priorTarget, newSource, targetDir string, plan *domain.Plan) error {
	if p.fs.Exists(ctx, priorTarget) {
		if isDir, err := p.fs.IsDir(ctx, priorTarget); err == nil && isDir {
			if err := p.planStowDirectory(ctx, priorTarget, targetDir, plan); err != nil {
				return err
			}
		}
	}
	return p.planStowDirectory(ctx, newSource, targetDir, plan)
}
