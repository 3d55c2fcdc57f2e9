package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

// snippetLength caps the passage extract shown per result.
const snippetLength = 160

var (
	searchLimit          int
	searchJSON           bool
	searchSemanticWeight float64
	searchKeywordWeight  float64
	searchNoRerank       bool
	searchPlatforms      []string
	searchCategories     []string
	searchTechStack      []string
	searchSince          string
	searchUntil          string
	searchContext        string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Performs hybrid search across all indexed documents.
Combines semantic (term-frequency vector) and keyword scores with configurable
weights, then applies structural re-ranking.

Filters combine with AND; repeated values of one filter combine with OR.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	flags := searchCmd.Flags()
	flags.IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = settings default)")
	flags.BoolVar(&searchJSON, "json", false, "output results as JSON")
	flags.Float64Var(&searchSemanticWeight, "semantic-weight", domain.DefaultSemanticWeight, "weight of the vector similarity score")
	flags.Float64Var(&searchKeywordWeight, "keyword-weight", domain.DefaultKeywordWeight, "weight of the keyword score")
	flags.BoolVar(&searchNoRerank, "no-rerank", false, "disable structural re-ranking")
	flags.StringArrayVar(&searchPlatforms, "platform", nil, "only documents for this platform (repeatable)")
	flags.StringArrayVar(&searchCategories, "category", nil, "only documents in this category (repeatable)")
	flags.StringArrayVar(&searchTechStack, "tech", nil, "only documents with this technology tag (repeatable)")
	flags.StringVar(&searchSince, "since", "", "only documents updated on or after this date (YYYY-MM-DD)")
	flags.StringVar(&searchUntil, "until", "", "only documents updated on or before this date (YYYY-MM-DD)")
	flags.StringVar(&searchContext, "context", "", "optional caller context")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errRetrievalNotConfigured
	}

	opts, err := searchOptions(cmd)
	if err != nil {
		return err
	}

	resp, err := retrievalService.Search(commandContext(cmd), query, opts)
	if errors.Is(err, domain.ErrNotIndexed) {
		return fmt.Errorf("nothing indexed yet, run 'hybrid-rag index <records-file>' first: %w", err)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}

	return outputSearchTable(cmd, resp)
}

// searchOptions builds options from flags. Weights and re-ranking are only
// sent when given explicitly so settings defaults still apply.
func searchOptions(cmd *cobra.Command) (*domain.SearchOptions, error) {
	dates, err := domain.ParseDateRange(searchSince, searchUntil)
	if err != nil {
		return nil, err
	}

	cfg := &domain.SearchConfig{}
	flags := cmd.Flags()
	if flags.Changed("semantic-weight") {
		if searchSemanticWeight < 0 {
			return nil, fmt.Errorf("%w: semantic weight must not be negative", domain.ErrInvalidInput)
		}
		cfg.SemanticWeight = domain.Float64(searchSemanticWeight)
	}
	if flags.Changed("keyword-weight") {
		if searchKeywordWeight < 0 {
			return nil, fmt.Errorf("%w: keyword weight must not be negative", domain.ErrInvalidInput)
		}
		cfg.KeywordWeight = domain.Float64(searchKeywordWeight)
	}
	if searchLimit > 0 {
		cfg.MaxResults = domain.Int(searchLimit)
	}
	if searchNoRerank {
		cfg.RerankResults = domain.Bool(false)
	}

	opts := &domain.SearchOptions{Context: searchContext, Config: cfg}
	filters := &domain.SearchFilters{
		Platforms:  searchPlatforms,
		Categories: searchCategories,
		TechStack:  searchTechStack,
		DateRange:  dates,
	}
	if !filters.IsEmpty() {
		opts.Filters = filters
	}
	return opts, nil
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	stats := resp.SearchStats
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		printSuggestions(cmd, resp.Suggestions)
		return nil
	}

	cmd.Printf("Results (%d of %d documents, %s):\n", len(resp.Results), stats.TotalDocuments, stats.SearchTime)
	cmd.Println()
	for i, r := range resp.Results {
		// Format: [N] document (match, score)
		cmd.Printf("  [%d] %s (%s, %.3f)\n", i+1, r.Metadata.DocumentID, r.Metadata.MatchType, r.Score)

		var tags []string
		if r.Metadata.Platform != "" {
			tags = append(tags, "platform: "+r.Metadata.Platform)
		}
		if r.Metadata.Category != "" {
			tags = append(tags, "category: "+r.Metadata.Category)
		}
		if r.Source != "" {
			tags = append(tags, "source: "+r.Source)
		}
		if len(tags) > 0 {
			cmd.Printf("      %s\n", strings.Join(tags, " | "))
		}

		if snippet := textproc.GenerateSummary(r.Content, snippetLength); snippet != "" {
			cmd.Printf("      %s\n", snippet)
		}
		cmd.Println()
	}

	printSuggestions(cmd, resp.Suggestions)
	return nil
}

func printSuggestions(cmd *cobra.Command, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	cmd.Println("Related searches:")
	for _, s := range suggestions {
		cmd.Printf("  - %s\n", s)
	}
}
