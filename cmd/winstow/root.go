package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/MathiasCodes/winstow/internal/adapters"
	"github.com/MathiasCodes/winstow/internal/config"
	"github.com/MathiasCodes/winstow/internal/domain"
	"github.com/MathiasCodes/winstow/internal/executor"
	"github.com/MathiasCodes/winstow/internal/ignore"
	"github.com/MathiasCodes/winstow/internal/planner"
)

// flags holds the CLI surface spec §6 defines, bound to a single cobra
// command (winstow has no subcommands — the action is chosen by mutually
// exclusive boolean flags, the way stow(1) itself works).
type flags struct {
	stow     bool
	delete   bool
	restow   bool
	dir      string
	target   string
	verbose  int
	dryRun   bool
	adopt    bool
	override bool
	ignore   []string
	deferred []string
	logJSON  bool
}

// NewRootCommand builds the single winstow command.
func NewRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "winstow [packages...]",
		Short:         "Symlink farm manager for Windows",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return &domain.InvalidPathError{Message: "at least one package name is required"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStow(cmd, f, args)
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &domain.InvalidPathError{Message: err.Error()}
	})

	cmd.Flags().BoolVarP(&f.stow, "stow", "S", false, "install packages (default action)")
	cmd.Flags().BoolVarP(&f.delete, "delete", "D", false, "uninstall packages")
	cmd.Flags().BoolVarP(&f.restow, "restow", "R", false, "delete then stow packages")
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "stow directory (default: current directory)")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "target directory (default: user home)")
	cmd.Flags().CountVarP(&f.verbose, "verbose", "v", "increase verbosity")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "show actions without applying them")
	cmd.Flags().BoolVar(&f.adopt, "adopt", false, "move conflicting target content into the package")
	cmd.Flags().BoolVar(&f.override, "override", false, "remove conflicting target content")
	cmd.Flags().StringArrayVar(&f.ignore, "ignore", nil, "glob pattern to ignore outright (repeatable)")
	cmd.Flags().StringArrayVar(&f.deferred, "defer", nil, "glob pattern to defer to an existing target (repeatable)")
	cmd.Flags().BoolVar(&f.logJSON, "json", false, "emit logs as JSON instead of human-readable text")

	return cmd
}

// action is the single operation mode a flags value resolves to.
type action int

const (
	actionStow action = iota
	actionDelete
	actionRestow
)

func resolveAction(f flags) (action, error) {
	set := 0
	if f.stow {
		set++
	}
	if f.delete {
		set++
	}
	if f.restow {
		set++
	}
	if set > 1 {
		return 0, &domain.InvalidPathError{Message: "only one of --stow, --delete, --restow may be given"}
	}

	switch {
	case f.delete:
		return actionDelete, validateNoStowOnlyFlags(f)
	case f.restow:
		return actionRestow, nil
	default:
		return actionStow, nil
	}
}

// validateNoStowOnlyFlags rejects --adopt/--override/--ignore/--defer when
// the action is --delete, per spec §6.
func validateNoStowOnlyFlags(f flags) error {
	if f.adopt || f.override {
		return &domain.InvalidPathError{Message: "--adopt and --override are invalid with --delete"}
	}
	if len(f.ignore) > 0 || len(f.deferred) > 0 {
		return &domain.InvalidPathError{Message: "--ignore and --defer are invalid with --delete"}
	}
	return nil
}

func runStow(cmd *cobra.Command, f flags, packages []string) error {
	act, err := resolveAction(f)
	if err != nil {
		return err
	}

	file, err := config.Load()
	if err != nil {
		return err
	}

	verbosity := f.verbose
	if !cmd.Flags().Changed("verbose") {
		verbosity = -1
	}

	resolved, err := config.Resolve(file, config.CLIFlags{
		Dir:            f.dir,
		Target:         f.target,
		Ignore:         f.ignore,
		Defer:          f.deferred,
		VerbosityCount: verbosity,
		DryRun:         f.dryRun,
		Adopt:          f.adopt,
		Override:       f.override,
	})
	if err != nil {
		return err
	}

	log := adapters.NewCLILogger(os.Stderr, resolved.VerbosityCount, f.logJSON)
	patterns, err := ignore.NewDefaultPatternSet(resolved.Ignore, resolved.Defer)
	if err != nil {
		return &domain.PatternError{Message: err.Error()}
	}

	fs := adapters.NewOSFilesystem()
	ctx := cmd.Context()

	p := planner.New(fs, log, resolved.Context.StowDir, resolved.Context.TargetDir,
		resolved.Context.Strategy, resolved.Context.DryRun, patterns)
	exec := executor.New(fs, log)

	for _, name := range packages {
		if err := runAction(ctx, act, p, exec, name, resolved.Context.DryRun); err != nil {
			return err
		}
	}

	return nil
}

// runAction builds and executes the plan(s) for one package. --restow is
// an unstow followed by a stow, each planned and executed as its own
// Plan — matching the teacher's sequential, non-transactional execution
// model (no combined rollback across the two halves).
func runAction(ctx context.Context, act action, p *planner.Planner, exec *executor.Executor, name string, dryRun bool) error {
	if act == actionDelete || act == actionRestow {
		plan, err := p.UnstowPackage(ctx, name)
		if err != nil {
			return err
		}
		if err := exec.Execute(ctx, plan, dryRun); err != nil {
			return err
		}
	}

	if act == actionStow || act == actionRestow {
		plan, err := p.StowPackage(ctx, name)
		if err != nil {
			return err
		}
		if err := exec.Execute(ctx, plan, dryRun); err != nil {
			return err
		}
	}

	return nil
}
