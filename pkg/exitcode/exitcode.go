// Package exitcode provides standardized exit codes for metaguard
package exitcode

// Exit codes for the metaguard CLI. The git hook contract reserves 0 for
// "commit may proceed" and 1 for "pairing violations found"; everything else
// signals an internal or configuration failure.
const (
	Success         = 0
	ViolationsFound = 1
	ConfigError     = 2
	FileSystemError = 3
	GeneralError    = 4
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case ViolationsFound:
		return "Pairing violations found"
	case ConfigError:
		return "Configuration error"
	case FileSystemError:
		return "File system error"
	case GeneralError:
		return "General error"
	default:
		return "Unknown error"
	}
}
