package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/custodia-labs/hybrid-rag/internal/adapters/driven/records"
	"github.com/custodia-labs/hybrid-rag/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/services"
)

// mockRetrievalService records calls and returns canned responses.
type mockRetrievalService struct {
	indexed     []domain.PlatformRecord
	added       []domain.PlatformRecord
	lastQuery   string
	lastOptions *domain.SearchOptions
	response    *domain.SearchResponse
	searchErr   error
	initErr     error
	stats       domain.IndexStats
}

func newMockRetrievalService() *mockRetrievalService {
	return &mockRetrievalService{
		response: &domain.SearchResponse{
			Query: "test query",
			Results: []domain.SearchResult{
				{
					ID:      "supabase-chunk-0",
					Content: "Platform: Supabase. Description: Open source Postgres development platform.",
					Score:   0.82,
					Source:  "platform-records",
					Metadata: domain.ResultMetadata{
						DocumentID: "supabase",
						ChunkID:    "supabase-chunk-0",
						Platform:   "web",
						Category:   "database",
						MatchType:  domain.MatchTypeHybrid,
					},
				},
			},
			SearchStats: domain.SearchStats{TotalDocuments: 3, SearchTime: 2 * time.Millisecond},
			Suggestions: []string{"test query tutorial"},
		},
		stats: domain.IndexStats{TotalDocuments: 3, TotalChunks: 4, VocabularySize: 42, IsIndexed: true},
	}
}

func (m *mockRetrievalService) Initialize(_ context.Context, recs []domain.PlatformRecord) error {
	if m.initErr != nil {
		return m.initErr
	}
	m.indexed = recs
	return nil
}

func (m *mockRetrievalService) AddDocuments(context.Context, []domain.Document) error {
	return nil
}

func (m *mockRetrievalService) AddRecords(_ context.Context, recs []domain.PlatformRecord) error {
	m.added = append(m.added, recs...)
	return nil
}

func (m *mockRetrievalService) Reload(context.Context) error {
	return nil
}

func (m *mockRetrievalService) Search(
	_ context.Context,
	query string,
	opts *domain.SearchOptions,
) (*domain.SearchResponse, error) {
	m.lastQuery = query
	m.lastOptions = opts
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.response, nil
}

func (m *mockRetrievalService) Stats(context.Context) domain.IndexStats {
	return m.stats
}

func (m *mockRetrievalService) Document(_ context.Context, id string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

// setupTestServices installs a mock retrieval service with in-memory
// settings and the file record loader. The returned func restores the
// previous services and command flags.
func setupTestServices(t *testing.T) (*mockRetrievalService, func()) {
	t.Helper()

	origRetrieval, origSettings, origLoader := retrievalService, settingsService, recordLoader

	mock := newMockRetrievalService()
	Configure(Services{
		Retrieval: mock,
		Settings:  services.NewSettingsService(memory.NewConfigStore()),
		Loader:    records.NewFileLoader(),
	})

	return mock, func() {
		retrievalService, settingsService, recordLoader = origRetrieval, origSettings, origLoader
		resetFlags()
	}
}

// resetFlags restores every command flag to its default, since cobra keeps
// parsed values on package-level commands between executions.
func resetFlags() {
	for _, c := range rootCmd.Commands() {
		resetFlagSet(c.Flags())
		for _, sub := range c.Commands() {
			resetFlagSet(sub.Flags())
		}
	}
}

func resetFlagSet(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

// executeCommand runs the root command with args and returns its output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
