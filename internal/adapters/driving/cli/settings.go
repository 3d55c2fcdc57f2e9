package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure chunking, search, indexing, storage and watch settings.

Settings are stored as TOML. Use 'settings set' with a dotted key to change one value.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by its dotted key.

Examples:
  hybrid-rag settings set search.max_results 5
  hybrid-rag settings set search.semantic_weight 0.6
  hybrid-rag settings set storage.backend memory`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List settable keys",
	Args:  cobra.NoArgs,
	RunE:  runSettingsKeys,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	printSettings(cmd, settings)
	return nil
}

func printSettings(cmd *cobra.Command, s *domain.AppSettings) {
	cmd.Println("Chunking")
	cmd.Printf("  Chunk size:        %d\n", s.Chunking.ChunkSize)
	cmd.Printf("  Overlap size:      %d\n", s.Chunking.OverlapSize)
	cmd.Printf("  Respect sentences: %t\n", s.Chunking.RespectSentences)
	cmd.Println()

	cmd.Println("Search")
	cmd.Printf("  Semantic weight:   %.2f\n", s.Search.SemanticWeight)
	cmd.Printf("  Keyword weight:    %.2f\n", s.Search.KeywordWeight)
	cmd.Printf("  Max results:       %d\n", s.Search.MaxResults)
	cmd.Printf("  Re-rank:           %t\n", s.Search.Rerank)
	cmd.Println()

	cmd.Println("Index")
	cmd.Printf("  Workers:           %d\n", s.Index.Workers)
	cmd.Printf("  Keywords/chunk:    %d\n", s.Index.KeywordsPerChunk)
	cmd.Printf("  Summary length:    %d\n", s.Index.SummaryLength)
	cmd.Println()

	cmd.Println("Storage")
	cmd.Printf("  Backend:           %s (%s)\n", s.Storage.Backend, s.Storage.Backend.Description())
	cmd.Println()

	cmd.Println("Watch")
	cmd.Printf("  Debounce:          %s\n", s.Watch.Debounce)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errSettingsNotConfigured
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}
