package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MathiasCodes/winstow/internal/config"
	"github.com/MathiasCodes/winstow/internal/domain"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".winstowrc")
	require.NoError(t, os.WriteFile(path, []byte(`
default-dir = "/stow"
default-target = "/home/me"
ignore = [".git"]
defer = ["README*"]
verbose = true
`), 0o644))

	f, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/stow", f.DefaultDir)
	assert.Equal(t, "/home/me", f.DefaultTarget)
	assert.Equal(t, []string{".git"}, f.Ignore)
	assert.Equal(t, []string{"README*"}, f.Defer)
	assert.True(t, f.Verbose)
}

func TestLoadFrom_Missing(t *testing.T) {
	_, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.IsType(t, &domain.ConfigError{}, err)
}

func TestLoadFrom_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".winstowrc")
	require.NoError(t, os.WriteFile(path, []byte("not valid [ toml"), 0o644))

	_, err := config.LoadFrom(path)
	require.Error(t, err)
	assert.IsType(t, &domain.ConfigError{}, err)
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	file := &config.File{DefaultDir: "/from-file", DefaultTarget: "/home/file", Ignore: []string{"*.bak"}}
	flags := config.CLIFlags{
		Dir:            "/from-flag",
		VerbosityCount: -1,
	}

	resolved, err := config.Resolve(file, flags)
	require.NoError(t, err)
	assert.Equal(t, "/from-flag", resolved.Context.StowDir)
	assert.Equal(t, "/home/file", resolved.Context.TargetDir)
	assert.Equal(t, []string{"*.bak"}, resolved.Ignore)
}

func TestResolve_DefaultsWhenNothingSet(t *testing.T) {
	resolved, err := config.Resolve(&config.File{}, config.CLIFlags{VerbosityCount: -1})
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, resolved.Context.StowDir)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, resolved.Context.TargetDir)
	assert.Equal(t, domain.Fail, resolved.Context.Strategy)
}

func TestResolve_AdoptAndOverrideConflict(t *testing.T) {
	_, err := config.Resolve(&config.File{}, config.CLIFlags{Adopt: true, Override: true, VerbosityCount: -1})
	require.Error(t, err)
}

func TestResolve_AdoptStrategy(t *testing.T) {
	resolved, err := config.Resolve(&config.File{}, config.CLIFlags{Adopt: true, VerbosityCount: -1})
	require.NoError(t, err)
	assert.Equal(t, domain.Adopt, resolved.Context.Strategy)
}

func TestResolve_VerboseFromFileWhenFlagUnset(t *testing.T) {
	resolved, err := config.Resolve(&config.File{Verbose: true}, config.CLIFlags{VerbosityCount: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, resolved.VerbosityCount)
}

func TestResolve_VerbosityFlagWins(t *testing.T) {
	resolved, err := config.Resolve(&config.File{Verbose: true}, config.CLIFlags{VerbosityCount: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, resolved.VerbosityCount)
}
