package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitykit/metaguard/pkg/exitcode"
)

// initTestRepo creates a scratch git repository with an Assets directory,
// the same shape the original hook test harness used.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}
	dir := t.TempDir()
	gitRun(t, dir, "init")
	gitRun(t, dir, "config", "user.email", "test@ci")
	gitRun(t, dir, "config", "user.name", "test")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Assets"), 0o755))
	return dir
}

func gitRun(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
}

func touch(t *testing.T, dir string, rel string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))
}

func TestCheckAddWithoutMetaThenWithMeta(t *testing.T) {
	dir := initTestRepo(t)
	touch(t, dir, "Assets/assets")
	gitRun(t, dir, "add", "Assets/assets")

	var stderr bytes.Buffer
	code := runCheckIn(dir, "", &stderr)
	assert.Equal(t, exitcode.ViolationsFound, code)
	assert.Contains(t, stderr.String(), "Error: Missing meta file")
	assert.Contains(t, stderr.String(), "Assets/assets")

	touch(t, dir, "Assets/assets.meta")
	gitRun(t, dir, "add", "Assets/assets.meta")

	stderr.Reset()
	code = runCheckIn(dir, "", &stderr)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr.String())
}

func TestCheckHiddenFileExempt(t *testing.T) {
	dir := initTestRepo(t)
	touch(t, dir, "Assets/.assets")
	gitRun(t, dir, "add", "--force", "Assets/.assets")

	var stderr bytes.Buffer
	code := runCheckIn(dir, "", &stderr)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr.String())
}

func TestCheckDirectoryRename(t *testing.T) {
	dir := initTestRepo(t)
	touch(t, dir, "Assets/dir/.gitkeep")
	touch(t, dir, "Assets/dir.meta")
	gitRun(t, dir, "add", "--force", "--all")
	gitRun(t, dir, "commit", "-m", "add Assets/dir")

	require.NoError(t, os.Rename(
		filepath.Join(dir, "Assets", "dir"),
		filepath.Join(dir, "Assets", "dir-new"),
	))
	gitRun(t, dir, "add", "--force", "--all")

	var stderr bytes.Buffer
	code := runCheckIn(dir, "", &stderr)
	assert.Equal(t, exitcode.ViolationsFound, code)
	assert.Contains(t, stderr.String(), "Error: Redudant meta file")
	assert.Contains(t, stderr.String(), "Assets/dir.meta")
}

func TestCheckCleanRename(t *testing.T) {
	dir := initTestRepo(t)
	touch(t, dir, "Assets/dir/.gitkeep")
	touch(t, dir, "Assets/dir.meta")
	gitRun(t, dir, "add", "--force", "--all")
	gitRun(t, dir, "commit", "-m", "add Assets/dir")

	require.NoError(t, os.Rename(
		filepath.Join(dir, "Assets", "dir"),
		filepath.Join(dir, "Assets", "dir-new"),
	))
	require.NoError(t, os.Rename(
		filepath.Join(dir, "Assets", "dir.meta"),
		filepath.Join(dir, "Assets", "dir-new.meta"),
	))
	gitRun(t, dir, "add", "--force", "--all")

	var stderr bytes.Buffer
	code := runCheckIn(dir, "", &stderr)
	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr.String())
}

func TestCheckNothingStaged(t *testing.T) {
	dir := initTestRepo(t)

	var stderr bytes.Buffer
	code := runCheckIn(dir, "", &stderr)
	assert.Equal(t, exitcode.Success, code)
}

func TestCheckIdempotent(t *testing.T) {
	dir := initTestRepo(t)
	touch(t, dir, "Assets/a.png")
	touch(t, dir, "Assets/b.png")
	gitRun(t, dir, "add", "--all")

	var first, second bytes.Buffer
	code1 := runCheckIn(dir, "", &first)
	code2 := runCheckIn(dir, "", &second)

	assert.Equal(t, code1, code2)
	assert.Equal(t, first.String(), second.String())
}

func TestCheckOutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}
	var stderr bytes.Buffer
	code := runCheckIn(t.TempDir(), "", &stderr)
	assert.Equal(t, exitcode.ConfigError, code)
}

func TestCheckAssetRootOverride(t *testing.T) {
	dir := initTestRepo(t)
	touch(t, dir, "Packages/thing")
	gitRun(t, dir, "add", "--all")

	var stderr bytes.Buffer
	// Default root: Packages is outside jurisdiction, no violation.
	assert.Equal(t, exitcode.Success, runCheckIn(dir, "", &stderr))

	stderr.Reset()
	code := runCheckIn(dir, "Packages", &stderr)
	assert.Equal(t, exitcode.ViolationsFound, code)
	assert.Contains(t, stderr.String(), "Packages/thing")
}
