// Package executor implements spec §4.7: a sequential, non-transactional
// dispatcher that runs each action of a Plan in order. The first failing
// action aborts the remainder — there is no rollback, per the spec's
// single-threaded, no-transaction scope. Grounded on
// original_source/src/planner.rs's execute_action.
package executor

import (
	"context"
	"errors"

	"github.com/MathiasCodes/winstow/internal/domain"
	"github.com/MathiasCodes/winstow/internal/fsops"
)

// Executor runs Plans against an injected filesystem and logger.
type Executor struct {
	fs  domain.FS
	log domain.Logger
}

// New constructs an Executor.
func New(fs domain.FS, log domain.Logger) *Executor {
	return &Executor{fs: fs, log: log}
}

// Execute runs every action of plan in order. When dryRun is true, each
// action is logged but no filesystem call is made. The first action that
// fails aborts execution and its error is returned; actions before it have
// already taken effect.
func (e *Executor) Execute(ctx context.Context, plan *domain.Plan, dryRun bool) error {
	for _, action := range plan.Actions {
		if err := e.executeAction(ctx, action, dryRun); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) executeAction(ctx context.Context, action domain.Action, dryRun bool) error {
	switch action.Kind {
	case domain.CreateFileLink:
		e.log.Info(ctx, "create file link", "link", action.Link, "target", action.RelativeTarget)
		if dryRun {
			return nil
		}
		return fsops.CreateSymlink(ctx, e.fs, action.Link, action.RelativeTarget, false)

	case domain.CreateDirLink:
		e.log.Info(ctx, "create directory link", "link", action.Link, "target", action.RelativeTarget)
		if dryRun {
			return nil
		}
		return fsops.CreateSymlink(ctx, e.fs, action.Link, action.RelativeTarget, true)

	case domain.UnfoldDirLink:
		e.log.Info(ctx, "unfold directory link", "link", action.Link, "was", action.PriorAbsoluteTarget)
		if dryRun {
			return nil
		}
		if err := e.fs.Remove(ctx, action.Link); err != nil {
			return &domain.IOError{Path: action.Link, Err: err}
		}
		if err := e.fs.Mkdir(ctx, action.Link, 0o755); err != nil {
			return &domain.IOError{Path: action.Link, Err: err}
		}
		return nil

	case domain.RemoveLink:
		e.log.Info(ctx, "remove link", "path", action.Link)
		if dryRun {
			return nil
		}
		if err := e.fs.Remove(ctx, action.Link); err != nil {
			return &domain.IOError{Path: action.Link, Err: err}
		}
		return nil

	case domain.RemoveEmptyDir:
		e.log.Info(ctx, "remove empty directory", "path", action.Link)
		if dryRun {
			return nil
		}
		return e.removeEmptyDirTolerant(ctx, action.Link)

	default:
		return nil
	}
}

// removeEmptyDirTolerant implements Open Question 2's resolution: every
// RemoveEmptyDir the unstow planner emits is speculative (it does not know
// whether a sibling link from another package still occupies the
// directory), so a DirectoryNotEmptyError here is logged and treated as
// success rather than propagated.
func (e *Executor) removeEmptyDirTolerant(ctx context.Context, path string) error {
	err := fsops.RemoveEmptyDirectory(ctx, e.fs, path)
	if err == nil {
		return nil
	}

	var notEmpty *domain.DirectoryNotEmptyError
	if errors.As(err, &notEmpty) {
		e.log.Debug(ctx, "directory not empty, leaving in place", "path", path)
		return nil
	}
	return err
}
