package driven

import (
	"context"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

// RecordLoader reads platform records from an external source.
type RecordLoader interface {
	// Load reads all records at path.
	// Returns domain.ErrUnsupportedFormat for unknown file types.
	Load(ctx context.Context, path string) ([]domain.PlatformRecord, error)

	// Supports reports whether path has a format the loader can read.
	Supports(path string) bool
}
