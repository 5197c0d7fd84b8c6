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
	"github.com/unitykit/metaguard/internal/staging"
	"github.com/unitykit/metaguard/pkg/config"
	"github.com/unitykit/metaguard/pkg/exitcode"
	"github.com/unitykit/metaguard/pkg/logger"
)

// checkCmd represents the check command, the pre-commit gate.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the staged change set satisfies the meta pairing invariant",
	Long: `Check enumerates the changes staged for the pending commit and verifies
that every content file under the asset root keeps exactly one meta sidecar
and vice versa. Violations are written to stderr and the process exits 1,
blocking the commit. Exit 0 means the commit may proceed.

This is the command the installed pre-commit hook runs. It reads the staging
snapshot and the working tree only; it never mutates either, never prompts,
and holds no state between invocations.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("asset-root", "", "Asset root directory under which pairing is enforced (overrides config)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	assetRoot, _ := cmd.Flags().GetString("asset-root")

	cwd, err := os.Getwd()
	if err != nil {
		logger.Error("Cannot determine working directory", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	code := runCheckIn(cwd, assetRoot, cmd.ErrOrStderr())
	if code != exitcode.Success {
		os.Exit(code)
	}
	return nil
}

// runCheckIn executes the gate for the repository containing dir and
// returns the process exit code. Factored out of the cobra handler so tests
// can drive it against scratch repositories.
func runCheckIn(dir, assetRootOverride string, stderr io.Writer) int {
	src := staging.NewGitSource(dir)

	root, err := src.Root()
	if err != nil {
		logger.Error("Not inside a git work tree", logger.Err(err))
		return exitcode.ConfigError
	}

	changes, err := src.Changes()
	if err != nil {
		// Never confuse an unreadable staging snapshot with "no changes".
		logger.Error("Cannot read staging snapshot", logger.Err(err))
		return exitcode.ConfigError
	}

	classifier, err := classifierFor(root, assetRootOverride)
	if err != nil {
		logger.Error("Cannot load configuration", logger.Err(err))
		return exitcode.ConfigError
	}

	probe := meta.NewFSProbe(osfs.New(root))
	violations := meta.Check(changes, probe, classifier)
	logger.Debug("Staged change set checked",
		logger.Int("changes", len(changes)),
		logger.Int("violations", len(violations)))

	return meta.Report(stderr, violations)
}

// classifierFor builds the path classifier from repository config plus an
// optional asset-root override from the command line.
func classifierFor(repoRoot, assetRootOverride string) (*meta.Classifier, error) {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		return nil, err
	}
	if assetRootOverride != "" {
		cfg.AssetRoot = assetRootOverride
	}
	return meta.NewClassifier(cfg.AssetRoot, cfg.MetaSuffix, cfg.Exclude), nil
}
