package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybrid-rag/internal/adapters/driving/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <records-file>",
	Short: "Index a records file and re-index on change",
	Long: `Indexes the records file, then watches it and rebuilds the index whenever
it is written. Bursts of writes are collapsed using the configured debounce.

Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before re-indexing (0 = settings default)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errRetrievalNotConfigured
	}
	if recordLoader == nil {
		return errLoaderNotConfigured
	}

	debounce := watcher.DefaultDebounce
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			debounce = settings.Watch.Debounce
		}
	}
	if watchDebounce > 0 {
		debounce = watchDebounce
	}

	w, err := watcher.New(args[0], recordLoader, retrievalService,
		watcher.WithDebounce(debounce),
		watcher.WithOnReload(func(records int, err error) {
			if err != nil {
				cmd.PrintErrf("Re-index failed: %v\n", err)
				return
			}
			cmd.Printf("Re-indexed %d records\n", records)
		}),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Reload(ctx); err != nil {
		return fmt.Errorf("initial index failed: %w", err)
	}

	cmd.Printf("Watching %s (debounce %s)\n", w.Path(), debounce)
	return runWatcher(ctx, w)
}

// runWatcher is replaced in tests.
var runWatcher = func(ctx context.Context, w *watcher.Watcher) error {
	return w.Run(ctx)
}
