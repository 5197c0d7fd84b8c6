/*
Copyright © 2025 UnityKit Authors
*/
package cmd

import (
	"io"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/unitykit/metaguard/internal/meta"
	"github.com/unitykit/metaguard/internal/scan"
	"github.com/unitykit/metaguard/internal/staging"
	"github.com/unitykit/metaguard/pkg/exitcode"
	"github.com/unitykit/metaguard/pkg/logger"
)

// scanCmd represents the scan command, the post-checkout/post-merge audit.
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Audit the whole working tree for meta pairing violations",
	Long: `Scan walks the asset root and reports every content file without its meta
sidecar and every sidecar without its content file, regardless of what is
staged. The installed post-checkout and post-merge hooks run it with
--advisory, which reports findings without failing the git operation.

With a path argument, that directory is audited directly; otherwise the
repository containing the current directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Bool("advisory", false, "Report violations but always exit 0")
	scanCmd.Flags().String("asset-root", "", "Asset root directory under which pairing is enforced (overrides config)")
}

func runScan(cmd *cobra.Command, args []string) error {
	advisory, _ := cmd.Flags().GetBool("advisory")
	assetRoot, _ := cmd.Flags().GetString("asset-root")

	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	code := runScanIn(target, assetRoot, cmd.ErrOrStderr())
	if advisory && code == exitcode.ViolationsFound {
		return nil
	}
	if code != exitcode.Success {
		os.Exit(code)
	}
	return nil
}

// runScanIn audits target (or the repository around the current directory
// when target is empty) and returns the process exit code.
func runScanIn(target, assetRootOverride string, stderr io.Writer) int {
	root := target
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			logger.Error("Cannot determine working directory", logger.Err(err))
			return exitcode.ConfigError
		}
		repoRoot, err := staging.NewGitSource(cwd).Root()
		if err != nil {
			logger.Error("Not inside a git work tree", logger.Err(err))
			return exitcode.ConfigError
		}
		root = repoRoot
	}
	if _, err := os.Stat(root); err != nil {
		logger.Error("Cannot access scan target", logger.String("path", root), logger.Err(err))
		return exitcode.FileSystemError
	}

	classifier, err := classifierFor(root, assetRootOverride)
	if err != nil {
		logger.Error("Cannot load configuration", logger.Err(err))
		return exitcode.ConfigError
	}

	violations, err := scan.Run(osfs.New(root), classifier)
	if err != nil {
		logger.Error("Working tree audit failed", logger.Err(err))
		return exitcode.FileSystemError
	}
	logger.Debug("Working tree audited", logger.Int("violations", len(violations)))

	return meta.Report(stderr, violations)
}
