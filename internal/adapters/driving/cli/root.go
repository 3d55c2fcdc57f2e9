// Package cli provides the command-line interface for hybrid-rag.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driving"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root.
var (
	retrievalService driving.RetrievalService
	settingsService  driving.SettingsService
	recordLoader     driven.RecordLoader
)

// Errors returned when a command runs without its service.
var (
	errRetrievalNotConfigured = errors.New("retrieval service not configured")
	errSettingsNotConfigured  = errors.New("settings service not configured")
	errLoaderNotConfigured    = errors.New("record loader not configured")
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "hybrid-rag",
	Short: "Hybrid semantic and keyword retrieval over a platform catalogue",
	Long: `hybrid-rag indexes platform records into passages and answers natural-language
queries by fusing term-frequency vector similarity with keyword matching.

Index a records file once, then search, watch it for changes, or expose the
index to AI assistants over MCP.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Services holds the dependencies the commands run against.
type Services struct {
	Retrieval driving.RetrievalService
	Settings  driving.SettingsService
	Loader    driven.RecordLoader
}

// Configure injects services. It must be called before Execute.
func Configure(s Services) {
	retrievalService = s.Retrieval
	settingsService = s.Settings
	recordLoader = s.Loader
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout so that
// JSON results can be piped.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
