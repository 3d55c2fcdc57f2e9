package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hybrid-rag/internal/adapters/driving/watcher"
)

// stubRunWatcher replaces the blocking watch loop for the test's duration.
func stubRunWatcher(t *testing.T) *string {
	t.Helper()
	var watched string
	orig := runWatcher
	runWatcher = func(_ context.Context, w *watcher.Watcher) error {
		watched = w.Path()
		return nil
	}
	t.Cleanup(func() { runWatcher = orig })
	return &watched
}

func TestWatchCmd_IndexesThenWatches(t *testing.T) {
	mock, cleanup := setupTestServices(t)
	defer cleanup()
	watched := stubRunWatcher(t)

	path := writeRecords(t, "records.json", recordsJSON)
	out, err := executeCommand("watch", path)

	require.NoError(t, err)
	assert.Len(t, mock.indexed, 2)
	assert.Equal(t, path, *watched)
	assert.Contains(t, out, "Re-indexed 2 records")
	assert.Contains(t, out, "(debounce 250ms)")
}

func TestWatchCmd_DebounceFlag(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	stubRunWatcher(t)

	out, err := executeCommand("watch", "--debounce", "2s", writeRecords(t, "records.json", recordsJSON))

	require.NoError(t, err)
	assert.Contains(t, out, "(debounce 2s)")
	assert.Equal(t, 2*time.Second, watchDebounce)
}

func TestWatchCmd_InitialIndexFailure(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	watched := stubRunWatcher(t)

	_, err := executeCommand("watch", writeRecords(t, "records.json", "{not json"))

	assert.ErrorContains(t, err, "initial index failed")
	assert.Empty(t, *watched)
}

func TestWatchCmd_UnsupportedFile(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()
	stubRunWatcher(t)

	_, err := executeCommand("watch", writeRecords(t, "records.txt", "x"))
	assert.Error(t, err)
}
