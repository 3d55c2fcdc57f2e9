package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybrid-rag/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("hybrid-rag version %s\n", version)
		if verbose {
			cmd.Printf("  go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			cmd.Printf("  mcp server: %s\n", mcp.Version)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
