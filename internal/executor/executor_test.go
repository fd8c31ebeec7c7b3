package executor_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MathiasCodes/winstow/internal/adapters"
	"github.com/MathiasCodes/winstow/internal/domain"
	"github.com/MathiasCodes/winstow/internal/executor"
)

func testLogger() domain.Logger {
	return adapters.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestExecute_EmptyPlan(t *testing.T) {
	ctx := context.Background()
	exec := executor.New(adapters.NewOSFilesystem(), testLogger())

	err := exec.Execute(ctx, &domain.Plan{}, false)
	require.NoError(t, err)
}

func TestExecute_CreateFileLink(t *testing.T) {
	ctx := context.Background()
	fsys := adapters.NewOSFilesystem()
	dir := t.TempDir()

	source := filepath.Join(dir, "pkg", "file.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(source), 0o755))
	require.NoError(t, os.WriteFile(source, []byte("hi"), 0o644))

	link := filepath.Join(dir, "target", "file.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))

	plan := &domain.Plan{Actions: []domain.Action{
		{Kind: domain.CreateFileLink, Link: link, RelativeTarget: filepath.Join("..", "pkg", "file.txt")},
	}}

	exec := executor.New(fsys, testLogger())
	require.NoError(t, exec.Execute(ctx, plan, false))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)
}

func TestExecute_CreateFileLink_DryRun(t *testing.T) {
	ctx := context.Background()
	fsys := adapters.NewOSFilesystem()
	dir := t.TempDir()

	link := filepath.Join(dir, "target", "file.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))

	plan := &domain.Plan{Actions: []domain.Action{
		{Kind: domain.CreateFileLink, Link: link, RelativeTarget: "../pkg/file.txt"},
	}}

	exec := executor.New(fsys, testLogger())
	require.NoError(t, exec.Execute(ctx, plan, true))

	assert.NoFileExists(t, link)
}

func TestExecute_UnfoldDirLink(t *testing.T) {
	ctx := context.Background()
	fsys := adapters.NewOSFilesystem()
	dir := t.TempDir()

	priorPkg := filepath.Join(dir, "pkg-a")
	require.NoError(t, os.MkdirAll(priorPkg, 0o755))

	link := filepath.Join(dir, "target", "subdir")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
	require.NoError(t, os.Symlink(priorPkg, link))

	plan := &domain.Plan{Actions: []domain.Action{
		{Kind: domain.UnfoldDirLink, Link: link, PriorAbsoluteTarget: priorPkg},
	}}

	exec := executor.New(fsys, testLogger())
	require.NoError(t, exec.Execute(ctx, plan, false))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.False(t, info.Mode()&os.ModeSymlink != 0)
}

func TestExecute_RemoveLink(t *testing.T) {
	ctx := context.Background()
	fsys := adapters.NewOSFilesystem()
	dir := t.TempDir()

	target := filepath.Join(dir, "real.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.Symlink(target, link))

	plan := &domain.Plan{Actions: []domain.Action{
		{Kind: domain.RemoveLink, Link: link},
	}}

	exec := executor.New(fsys, testLogger())
	require.NoError(t, exec.Execute(ctx, plan, false))

	assert.NoFileExists(t, link)
	assert.FileExists(t, target)
}

func TestExecute_RemoveEmptyDir(t *testing.T) {
	ctx := context.Background()
	fsys := adapters.NewOSFilesystem()
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.MkdirAll(empty, 0o755))

	plan := &domain.Plan{Actions: []domain.Action{
		{Kind: domain.RemoveEmptyDir, Link: empty},
	}}

	exec := executor.New(fsys, testLogger())
	require.NoError(t, exec.Execute(ctx, plan, false))

	assert.NoDirExists(t, empty)
}

func TestExecute_RemoveEmptyDir_NotEmptyIsTolerated(t *testing.T) {
	ctx := context.Background()
	fsys := adapters.NewOSFilesystem()
	dir := t.TempDir()

	notEmpty := filepath.Join(dir, "occupied")
	require.NoError(t, os.MkdirAll(notEmpty, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(notEmpty, "still-here.txt"), []byte("x"), 0o644))

	plan := &domain.Plan{Actions: []domain.Action{
		{Kind: domain.RemoveEmptyDir, Link: notEmpty},
	}}

	exec := executor.New(fsys, testLogger())
	err := exec.Execute(ctx, plan, false)
	require.NoError(t, err)
	assert.DirExists(t, notEmpty)
}

func TestExecute_AbortsOnFirstFailure(t *testing.T) {
	ctx := context.Background()
	fsys := adapters.NewOSFilesystem()
	dir := t.TempDir()

	link1 := filepath.Join(dir, "target", "first.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(link1), 0o755))
	link2 := filepath.Join(dir, "target", "second.txt")
	require.NoError(t, os.WriteFile(link2, []byte("pre-existing, not a symlink"), 0o644))

	plan := &domain.Plan{Actions: []domain.Action{
		{Kind: domain.CreateFileLink, Link: link1, RelativeTarget: "../pkg/first.txt"},
		{Kind: domain.CreateFileLink, Link: link2, RelativeTarget: "../pkg/second.txt"},
	}}

	exec := executor.New(fsys, testLogger())
	err := exec.Execute(ctx, plan, false)
	require.Error(t, err)

	assert.FileExists(t, link1)
	content, readErr := os.ReadFile(link2)
	require.NoError(t, readErr)
	assert.Equal(t, "pre-existing, not a symlink", string(content))
}
