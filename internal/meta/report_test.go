package meta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unitykit/metaguard/pkg/exitcode"
)

func TestReportNoViolations(t *testing.T) {
	var buf bytes.Buffer

	code := Report(&buf, nil)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, buf.String())
}

func TestReportMissingMetadata(t *testing.T) {
	var buf bytes.Buffer

	code := Report(&buf, []Violation{{Path: "Assets/assets", Kind: MissingMetadata}})

	assert.Equal(t, exitcode.ViolationsFound, code)
	assert.Equal(t, "Error: Missing meta file: Assets/assets\n", buf.String())
}

func TestReportRedundantMetadata(t *testing.T) {
	var buf bytes.Buffer

	code := Report(&buf, []Violation{{Path: "Assets/dir.meta", Kind: RedundantMetadata}})

	assert.Equal(t, exitcode.ViolationsFound, code)
	// The misspelling is the established wire contract.
	assert.Equal(t, "Error: Redudant meta file: Assets/dir.meta\n", buf.String())
}

func TestReportPreservesOrder(t *testing.T) {
	var buf bytes.Buffer

	violations := []Violation{
		{Path: "Assets/b.png", Kind: MissingMetadata},
		{Path: "Assets/a.meta", Kind: RedundantMetadata},
		{Path: "Assets/c.png", Kind: MissingMetadata},
	}
	code := Report(&buf, violations)

	assert.Equal(t, exitcode.ViolationsFound, code)
	expected := "Error: Missing meta file: Assets/b.png\n" +
		"Error: Redudant meta file: Assets/a.meta\n" +
		"Error: Missing meta file: Assets/c.png\n"
	assert.Equal(t, expected, buf.String())
}
