package hooks

import (
	"strings"

	"github.com/aymerick/raymond"
)

// scriptTemplate is the shell script installed for every hook. The marker
// line lets the installer and inspector recognize their own output, and the
// duplicate check in Install keys off the full rendered content. Triple
// braces keep raymond from HTML-escaping paths.
const scriptTemplate = `#!/bin/sh
# metaguard:{{{name}}} hook. Generated, do not edit.
{{{binary}}} {{{args}}}
`

// scriptMarker prefixes the identification line of every generated script.
const scriptMarker = "# metaguard:"

// RenderScript produces the hook script for one manifest entry. binary is
// the command the script invokes, normally "metaguard" resolved via PATH.
func RenderScript(binary, name string, args []string) (string, error) {
	return raymond.Render(scriptTemplate, map[string]interface{}{
		"binary": binary,
		"name":   name,
		"args":   strings.Join(args, " "),
	})
}

// IsGenerated reports whether existing hook content came from metaguard.
func IsGenerated(content string) bool {
	return strings.Contains(content, scriptMarker)
}
