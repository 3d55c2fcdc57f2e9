package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

var indexCmd = &cobra.Command{
	Use:   "index [records-file]",
	Short: "Index a records file, replacing the corpus",
	Long: `Loads platform records from a JSON, YAML or TOML file, replaces the stored
corpus with them and rebuilds the search index.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

var addCmd = &cobra.Command{
	Use:   "add [records-file]",
	Short: "Add records to the corpus",
	Long: `Loads platform records from a file and adds them to the stored corpus.
Records whose id already exists replace the stored document. The whole index
is rebuilt afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(addCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	return loadAndApply(cmd, args[0], "Indexed", func(ctx context.Context, records []domain.PlatformRecord) error {
		return retrievalService.Initialize(ctx, records)
	})
}

func runAdd(cmd *cobra.Command, args []string) error {
	return loadAndApply(cmd, args[0], "Added", func(ctx context.Context, records []domain.PlatformRecord) error {
		return retrievalService.AddRecords(ctx, records)
	})
}

// loadAndApply reads records from path and hands them to apply.
func loadAndApply(
	cmd *cobra.Command,
	path, verb string,
	apply func(context.Context, []domain.PlatformRecord) error,
) error {
	if retrievalService == nil {
		return errRetrievalNotConfigured
	}
	if recordLoader == nil {
		return errLoaderNotConfigured
	}

	ctx := commandContext(cmd)
	start := time.Now()

	records, err := recordLoader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	if err := apply(ctx, records); err != nil {
		return fmt.Errorf("failed to index records: %w", err)
	}

	stats := retrievalService.Stats(ctx)
	cmd.Printf("%s %d records in %s\n", verb, len(records), time.Since(start).Round(time.Millisecond))
	cmd.Printf("  Documents:  %d\n", stats.TotalDocuments)
	cmd.Printf("  Chunks:     %d\n", stats.TotalChunks)
	cmd.Printf("  Vocabulary: %d terms\n", stats.VocabularySize)
	return nil
}

// commandContext returns the command's context, or Background when run
// outside ExecuteContext.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
