/*
Copyright © 2025 UnityKit Authors
*/
package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/unitykit/metaguard/pkg/buildinfo"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Show extended build information")
}

func runVersion(cmd *cobra.Command, args []string) error {
	extended, _ := cmd.Flags().GetBool("extended")

	fmt.Fprintf(cmd.OutOrStdout(), "metaguard %s\n", buildinfo.BinaryVersion)
	if extended {
		if mv := buildinfo.ModuleVersion(); mv != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "module version: %s\n", mv)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "go version: %s\n", runtime.Version())
		fmt.Fprintf(cmd.OutOrStdout(), "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	return nil
}
