package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// configFileName is the bare-filename form used in the current-directory
// and home-directory search locations.
const configFileName = ".winstowrc"

// Locate returns the first of the three locations spec §6 defines that
// exists on disk: CWD .winstowrc, then home .winstowrc, then
// <app-data>/winstow/config.toml. ok is false if none exist.
func Locate() (path string, ok bool) {
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, configFileName)
		if fileExists(candidate) {
			return candidate, true
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, configFileName)
		if fileExists(candidate) {
			return candidate, true
		}
	}

	if appData, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(appData, "winstow", "config.toml")
		if fileExists(candidate) {
			return candidate, true
		}
	}

	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Load locates and parses a config file, following spec §6's search order.
// Every location is parsed as TOML, matching original_source/src/config.rs
// (which reads every location with the same toml::from_str call regardless
// of filename). A missing file is not an error: Load returns a zero File.
func Load() (*File, error) {
	path, ok := Locate()
	if !ok {
		return &File{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom parses a specific config file path.
func LoadFrom(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigError{Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, &domain.ConfigError{Message: fmt.Sprintf("parsing %s: %v", path, err)}
	}
	return &f, nil
}

// envOverrides reads WINSTOW_-prefixed environment variables over the five
// config keys, returning a sparse File holding only what was set.
func envOverrides() *File {
	v := viper.New()
	v.SetEnvPrefix("WINSTOW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{"default-dir", "default-target", "ignore", "defer", "verbose"} {
		_ = v.BindEnv(key)
	}

	sparse := &File{}
	if v.IsSet("default-dir") {
		sparse.DefaultDir = v.GetString("default-dir")
	}
	if v.IsSet("default-target") {
		sparse.DefaultTarget = v.GetString("default-target")
	}
	if v.IsSet("ignore") {
		sparse.Ignore = v.GetStringSlice("ignore")
	}
	if v.IsSet("defer") {
		sparse.Defer = v.GetStringSlice("defer")
	}
	if v.IsSet("verbose") {
		sparse.Verbose = v.GetBool("verbose")
	}
	return sparse
}

// CLIFlags carries the subset of cobra/pflag values that can override the
// config file. VerbosityCount uses -1 as the teacher's "not set" sentinel,
// so a config file's verbose=true survives when -v was never passed.
type CLIFlags struct {
	Dir            string
	Target         string
	Ignore         []string
	Defer          []string
	VerbosityCount int
	DryRun         bool
	Adopt          bool
	Override       bool
}

// Resolved is the fully merged, ready-to-use configuration: a
// domain.Context plus the raw pattern lists (compiled into a PatternSet by
// the caller, since ignore is not a config-package concern).
type Resolved struct {
	Context        domain.Context
	Ignore         []string
	Defer          []string
	VerbosityCount int
}

// Resolve merges a parsed File, environment overrides, and CLIFlags with
// precedence flags > env > file > defaults, following spec §6's policy
// and original_source/src/config.rs's merge_with_cli.
func Resolve(file *File, flags CLIFlags) (Resolved, error) {
	if flags.Adopt && flags.Override {
		return Resolved{}, &domain.InvalidPathError{Message: "--adopt and --override are mutually exclusive"}
	}

	merged := mergeFiles(file, envOverrides())

	stowDir := flags.Dir
	if stowDir == "" {
		stowDir = merged.DefaultDir
	}
	if stowDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Resolved{}, &domain.ConfigError{Message: fmt.Sprintf("determining current directory: %v", err)}
		}
		stowDir = cwd
	}

	targetDir := flags.Target
	if targetDir == "" {
		targetDir = merged.DefaultTarget
	}
	if targetDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Resolved{}, &domain.ConfigError{Message: fmt.Sprintf("determining home directory: %v", err)}
		}
		targetDir = home
	}

	ignore := merged.Ignore
	if len(flags.Ignore) > 0 {
		ignore = flags.Ignore
	}

	deferPatterns := merged.Defer
	if len(flags.Defer) > 0 {
		deferPatterns = flags.Defer
	}

	verbosity := flags.VerbosityCount
	if verbosity < 0 {
		if merged.Verbose {
			verbosity = 1
		} else {
			verbosity = 0
		}
	}

	strategy := domain.Fail
	if flags.Adopt {
		strategy = domain.Adopt
	} else if flags.Override {
		strategy = domain.Override
	}

	return Resolved{
		Context: domain.Context{
			StowDir:   stowDir,
			TargetDir: targetDir,
			Strategy:  strategy,
			DryRun:    flags.DryRun,
		},
		Ignore:         ignore,
		Defer:          deferPatterns,
		VerbosityCount: verbosity,
	}, nil
}

// mergeFiles layers override on top of base, field by field, keeping
// base's value wherever override left its field at the zero value — the
// same sparse-merge shape as the teacher's mergeConfigs helpers.
func mergeFiles(base, override *File) *File {
	merged := *base
	if override.DefaultDir != "" {
		merged.DefaultDir = override.DefaultDir
	}
	if override.DefaultTarget != "" {
		merged.DefaultTarget = override.DefaultTarget
	}
	if len(override.Ignore) > 0 {
		merged.Ignore = override.Ignore
	}
	if len(override.Defer) > 0 {
		merged.Defer = override.Defer
	}
	if override.Verbose {
		merged.Verbose = true
	}
	return &merged
}
