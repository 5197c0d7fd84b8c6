package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitykit/metaguard/internal/hooks"
)

func TestHooksInstallRemoveCycle(t *testing.T) {
	dir := initTestRepo(t)
	t.Chdir(dir)

	require.NoError(t, runHooksInstall(hooksInstallCmd, nil))

	script := filepath.Join(dir, ".git", "hooks", "pre-commit")
	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Contains(t, string(content), "metaguard check")
	assert.True(t, hooks.IsGenerated(string(content)))

	// Manifest is materialized on first install.
	_, err = os.Stat(filepath.Join(dir, hooks.ManifestDir, hooks.ManifestName))
	require.NoError(t, err)

	// Second install is a no-op.
	require.NoError(t, runHooksInstall(hooksInstallCmd, nil))

	require.NoError(t, runHooksRemove(hooksRemoveCmd, nil))
	_, err = os.Stat(script)
	assert.True(t, os.IsNotExist(err))
}

func TestHooksInstallBacksUpForeignHook(t *testing.T) {
	dir := initTestRepo(t)
	t.Chdir(dir)

	hooksDir := filepath.Join(dir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	foreign := "#!/bin/sh\necho custom\n"
	require.NoError(t, os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte(foreign), 0o755))

	require.NoError(t, runHooksInstall(hooksInstallCmd, nil))

	backup, err := os.ReadFile(filepath.Join(hooksDir, "pre-commit"+hooks.BackupSuffix))
	require.NoError(t, err)
	assert.Equal(t, foreign, string(backup))

	// Remove restores the foreign hook from its backup.
	require.NoError(t, runHooksRemove(hooksRemoveCmd, nil))
	restored, err := os.ReadFile(filepath.Join(hooksDir, "pre-commit"))
	require.NoError(t, err)
	assert.Equal(t, foreign, string(restored))
}

func TestHooksValidateDefaultManifest(t *testing.T) {
	dir := initTestRepo(t)
	t.Chdir(dir)

	require.NoError(t, runHooksInstall(hooksInstallCmd, nil))
	require.NoError(t, runHooksValidate(hooksValidateCmd, nil))
}

func TestHooksValidateMissingManifest(t *testing.T) {
	dir := initTestRepo(t)
	t.Chdir(dir)

	err := runHooksValidate(hooksValidateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hooks manifest not found")
}

func TestHooksOutsideRepository(t *testing.T) {
	t.Chdir(t.TempDir())

	err := runHooksInstall(hooksInstallCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in a git repository")
}
