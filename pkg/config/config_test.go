package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Assets", cfg.AssetRoot)
	assert.Equal(t, ".meta", cfg.MetaSuffix)
	assert.Empty(t, cfg.Exclude)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "asset_root: Packages\nmeta_suffix: .meta\nexclude:\n  - \"**/*.tmp\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".metaguard.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Packages", cfg.AssetRoot)
	assert.Equal(t, []string{"**/*.tmp"}, cfg.Exclude)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".metaguard.yaml"), []byte("exclude: [\"Generated/**\"]\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "Assets", cfg.AssetRoot)
	assert.Equal(t, ".meta", cfg.MetaSuffix)
	assert.Equal(t, []string{"Generated/**"}, cfg.Exclude)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".metaguard.yaml"), []byte(":\n\t- not yaml"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, "Assets", d.AssetRoot)
	assert.Equal(t, ".meta", d.MetaSuffix)
}
