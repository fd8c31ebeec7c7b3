package planner

import (
	"context"
	"path/filepath"

	"github.com/MathiasCodes/winstow/internal/domain"
	"github.com/MathiasCodes/winstow/internal/fsops"
	"github.com/MathiasCodes/winstow/internal/pathutil"
)

// UnstowPackage validates that name names an existing package, then plans
// the removal of every symlink under the target directory that was created
// by it, plus an opportunistic prune of any directory left empty.
func (p *Planner) UnstowPackage(ctx context.Context, name string) (*domain.Plan, error) {
	packagePath, err := pathutil.PackagePath(p.stowDir, name)
	if err != nil {
		return nil, err
	}

	if !p.fs.Exists(ctx, packagePath) {
		return nil, &domain.PackageNotFoundError{Package: name, StowDir: p.stowDir}
	}

	p.log.Debug(ctx, "unstowing package", "package", name)

	plan := &domain.Plan{}
	if err := p.planUnstowDirectory(ctx, packagePath, p.targetDir, plan); err != nil {
		return nil, err
	}

	p.log.Debug(ctx, "plan built", "package", name, "actions", plan.Len())
	return plan, nil
}

// planUnstowDirectory walks packageDir looking for the corresponding
// target-side entries this package created, then speculatively prunes
// targetDir once its contents have been planned for removal. A
// speculative RemoveEmptyDir is not emitted for the target root itself.
func (p *Planner) planUnstowDirectory(ctx context.Context, packageDir, targetDir string, plan *domain.Plan) error {
	if !p.fs.Exists(ctx, targetDir) {
		return nil
	}

	entries, err := p.fs.ReadDir(ctx, packageDir)
	if err != nil {
		return &domain.IOError{Path: packageDir, Err: err}
	}

	for _, entry := range entries {
		packageItem := filepath.Join(packageDir, entry.Name())
		targetItem := filepath.Join(targetDir, entry.Name())

		if !p.fs.Exists(ctx, targetItem) {
			continue
		}

		if entry.IsDir() {
			if err := p.planUnstowDirItem(ctx, packageItem, targetItem, plan); err != nil {
				return err
			}
		} else {
			if err := p.planUnstowFile(ctx, packageItem, targetItem, plan); err != nil {
				return err
			}
		}
	}

	if targetDir != p.targetDir {
		plan.Add(domain.Action{Kind: domain.RemoveEmptyDir, Link: targetDir})
	}

	return nil
}

// planUnstowFile plans the removal of a non-directory target entry, but
// only if it is a symlink this package owns — ownership decided purely by
// comparing the symlink's resolved target against the package entry
// (spec's "no manifest" design, §9).
func (p *Planner) planUnstowFile(ctx context.Context, packageFile, targetFile string, plan *domain.Plan) error {
	if !fsops.IsSymlink(ctx, p.fs, targetFile) {
		p.log.Debug(ctx, "target is not a symlink, skipping", "path", targetFile)
		return nil
	}

	owned, err := p.ownsLink(ctx, targetFile, packageFile)
	if err != nil {
		return err
	}
	if !owned {
		p.log.Debug(ctx, "symlink points elsewhere, skipping", "path", targetFile)
		return nil
	}

	plan.Add(domain.Action{Kind: domain.RemoveLink, Link: targetFile})
	return nil
}

// planUnstowDirItem plans the removal of a directory-typed target entry:
// a matching directory symlink is removed outright; a real directory is
// recursed into.
func (p *Planner) planUnstowDirItem(ctx context.Context, packageDir, targetDir string, plan *domain.Plan) error {
	if fsops.IsSymlink(ctx, p.fs, targetDir) {
		owned, err := p.ownsLink(ctx, targetDir, packageDir)
		if err != nil {
			return err
		}
		if owned {
			plan.Add(domain.Action{Kind: domain.RemoveLink, Link: targetDir})
		} else {
			p.log.Debug(ctx, "directory symlink points elsewhere, skipping", "path", targetDir)
		}
		return nil
	}

	isDir, err := p.fs.IsDir(ctx, targetDir)
	if err != nil {
		return &domain.IOError{Path: targetDir, Err: err}
	}
	if isDir {
		return p.planUnstowDirectory(ctx, packageDir, targetDir, plan)
	}

	p.log.Debug(ctx, "target is not a directory or symlink, skipping", "path", targetDir)
	return nil
}

// ownsLink reports whether target's resolved absolute symlink payload
// equals packageItem (spec invariant 1: ownership soundness).
func (p *Planner) ownsLink(ctx context.Context, target, packageItem string) (bool, error) {
	rawTarget, err := fsops.ReadSymlink(ctx, p.fs, target)
	if err != nil {
		return false, err
	}
	linkTargetNorm, err := pathutil.Normalize(linkTargetAbs(target, rawTarget))
	if err != nil {
		return false, &domain.InvalidPathError{Message: err.Error()}
	}
	packageNorm, err := pathutil.Normalize(packageItem)
	if err != nil {
		return false, &domain.InvalidPathError{Message: err.Error()}
	}
	return pathutil.PathsEqual(linkTargetNorm, packageNorm), nil
}
