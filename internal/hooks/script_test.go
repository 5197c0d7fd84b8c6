package hooks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderScript(t *testing.T) {
	script, err := RenderScript("metaguard", "pre-commit", []string{"check"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(script, "#!/bin/sh\n"))
	assert.Contains(t, script, "# metaguard:pre-commit")
	assert.Contains(t, script, "metaguard check\n")
}

func TestRenderScriptMultipleArgs(t *testing.T) {
	script, err := RenderScript("metaguard", "post-checkout", []string{"scan", "--advisory"})
	require.NoError(t, err)

	assert.Contains(t, script, "metaguard scan --advisory\n")
}

func TestRenderScriptDoesNotEscapePaths(t *testing.T) {
	// Binary paths with shell-relevant characters must pass through
	// unescaped; raymond's HTML escaping would corrupt them.
	script, err := RenderScript("/opt/tools & bin/metaguard", "pre-commit", []string{"check"})
	require.NoError(t, err)

	assert.Contains(t, script, "/opt/tools & bin/metaguard check")
	assert.NotContains(t, script, "&amp;")
}

func TestIsGenerated(t *testing.T) {
	script, err := RenderScript("metaguard", "pre-commit", []string{"check"})
	require.NoError(t, err)

	assert.True(t, IsGenerated(script))
	assert.False(t, IsGenerated("#!/bin/sh\necho hi\n"))
}
