package meta

import (
	"fmt"
	"io"

	"github.com/unitykit/metaguard/pkg/exitcode"
)

// Diagnostic templates are a wire contract: callers (and the original hook
// scripts they replace) pattern-match on these exact strings, misspelling
// included. Do not correct them.
const (
	missingTemplate   = "Error: Missing meta file: %s\n"
	redundantTemplate = "Error: Redudant meta file: %s\n"
)

// Report writes one diagnostic line per violation to w and returns the
// process exit code: Success when the list is empty, ViolationsFound
// otherwise. This is the sole boundary that communicates the verdict to the
// invoking git process.
func Report(w io.Writer, violations []Violation) int {
	for _, v := range violations {
		switch v.Kind {
		case MissingMetadata:
			fmt.Fprintf(w, missingTemplate, v.Path)
		case RedundantMetadata:
			fmt.Fprintf(w, redundantTemplate, v.Path)
		}
	}
	if len(violations) == 0 {
		return exitcode.Success
	}
	return exitcode.ViolationsFound
}
