/*
Copyright © 2025 UnityKit Authors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/unitykit/metaguard/internal/hooks"
	"github.com/unitykit/metaguard/internal/staging"
)

// hooksCmd represents the hooks command
var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage the git hooks that run metaguard",
	Long: `Hooks installs and manages the git hook scripts that put metaguard in
front of commits, checkouts and merges. The set of hooks and their arguments
comes from the .metaguard/hooks.yaml manifest, created on first install.

Examples:
  metaguard hooks install    # Install hooks into .git/hooks
  metaguard hooks remove     # Remove installed hooks, restoring backups
  metaguard hooks inspect    # Show per-hook installation status
  metaguard hooks validate   # Validate the hooks manifest`,
}

// hooksInstallCmd represents the hooks install command
var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install hook scripts into .git/hooks",
	Long: `Install renders one script per manifest entry and places it in the
repository's hook directory. A destination already containing the identical
script is skipped; any other pre-existing hook is kept at <name>.backup.
Scripts are marked executable on non-Windows systems.`,
	Args: cobra.NoArgs,
	RunE: runHooksInstall,
}

// hooksRemoveCmd represents the hooks remove command
var hooksRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove installed hooks",
	Long: `Remove uninstalls metaguard hook scripts from .git/hooks, restoring any
previously backed up hooks. Hooks not generated by metaguard are left alone.`,
	Args: cobra.NoArgs,
	RunE: runHooksRemove,
}

// hooksInspectCmd represents the hooks inspect command
var hooksInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show per-hook installation status",
	Args:  cobra.NoArgs,
	RunE:  runHooksInspect,
}

// hooksValidateCmd represents the hooks validate command
var hooksValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the hooks manifest against its schema",
	Args:  cobra.NoArgs,
	RunE:  runHooksValidate,
}

func init() {
	hooksCmd.AddCommand(hooksInstallCmd)
	hooksCmd.AddCommand(hooksRemoveCmd)
	hooksCmd.AddCommand(hooksInspectCmd)
	hooksCmd.AddCommand(hooksValidateCmd)

	hooksInstallCmd.Flags().String("binary", "metaguard", "Command the installed scripts invoke")
}

// repoPaths locates the repository around the current directory and returns
// its root and hook directory.
func repoPaths() (root, hooksDir string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	root, err = staging.NewGitSource(cwd).Root()
	if err != nil {
		return "", "", fmt.Errorf("not in a git repository; initialize one first with 'git init'")
	}
	return root, filepath.Join(root, ".git", "hooks"), nil
}

func runHooksInstall(cmd *cobra.Command, args []string) error {
	binary, _ := cmd.Flags().GetString("binary")

	root, hooksDir, err := repoPaths()
	if err != nil {
		return err
	}

	manifest, err := hooks.LoadOrInitManifest(osfs.New(root))
	if err != nil {
		return fmt.Errorf("failed to load hooks manifest: %w", err)
	}

	installer := hooks.NewInstaller(osfs.New(root), filepath.Join(".git", "hooks"))
	for _, spec := range manifest.Hooks {
		content, err := hooks.RenderScript(binary, spec.Name, spec.Args)
		if err != nil {
			return fmt.Errorf("failed to render %s hook: %w", spec.Name, err)
		}

		result, err := installer.Install(spec.Name, content)
		if err != nil {
			return err
		}
		switch result {
		case hooks.ResultSkipped:
			fmt.Printf("⏭️  Skipped %s hook (already installed)\n", spec.Name)
			continue
		case hooks.ResultReplaced:
			fmt.Printf("📋 Backed up existing %s hook to %s%s\n", spec.Name, spec.Name, hooks.BackupSuffix)
		}

		// Windows executes hooks through sh; the executable bit only
		// matters elsewhere.
		if runtime.GOOS != "windows" {
			if err := os.Chmod(filepath.Join(hooksDir, spec.Name), 0o755); err != nil {
				return fmt.Errorf("failed to make %s hook executable: %w", spec.Name, err)
			}
		}
		fmt.Printf("✅ Installed %s hook\n", spec.Name)
	}

	fmt.Println("🎯 Hooks installed. Commits are now gated on meta pairing.")
	return nil
}

func runHooksRemove(cmd *cobra.Command, args []string) error {
	root, _, err := repoPaths()
	if err != nil {
		return err
	}

	manifest, err := hooks.LoadOrInitManifest(osfs.New(root))
	if err != nil {
		return fmt.Errorf("failed to load hooks manifest: %w", err)
	}

	installer := hooks.NewInstaller(osfs.New(root), filepath.Join(".git", "hooks"))
	removed := 0
	for _, spec := range manifest.Hooks {
		ok, err := installer.Remove(spec.Name)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("✅ Removed %s hook\n", spec.Name)
			removed++
		}
	}

	if removed == 0 {
		fmt.Println("⚠️  No metaguard hooks found to remove")
		return nil
	}
	fmt.Println("✅ Metaguard hooks removed; backed up hooks were restored")
	return nil
}

func runHooksInspect(cmd *cobra.Command, args []string) error {
	root, _, err := repoPaths()
	if err != nil {
		return err
	}

	manifest, err := hooks.LoadOrInitManifest(osfs.New(root))
	if err != nil {
		return fmt.Errorf("failed to load hooks manifest: %w", err)
	}

	installer := hooks.NewInstaller(osfs.New(root), filepath.Join(".git", "hooks"))
	fmt.Println("📊 Hook status:")
	for _, spec := range manifest.Hooks {
		status := installer.Inspect(spec.Name)
		marker := "❌"
		if status == hooks.StatusInstalled {
			marker = "✅"
		} else if status == hooks.StatusForeign {
			marker = "⚠️ "
		}
		fmt.Printf("  %s %-14s %s\n", marker, spec.Name, status)
	}
	return nil
}

func runHooksValidate(cmd *cobra.Command, args []string) error {
	root, _, err := repoPaths()
	if err != nil {
		return err
	}

	path := filepath.Join(root, hooks.ManifestDir, hooks.ManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("hooks manifest not found at %s; run 'metaguard hooks install' first", path)
	}

	messages, err := hooks.ValidateManifestBytes(data)
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		for _, msg := range messages {
			fmt.Printf("❌ %s\n", msg)
		}
		return fmt.Errorf("hooks manifest failed validation with %d error(s)", len(messages))
	}

	fmt.Println("✅ Hooks manifest is valid")
	return nil
}
