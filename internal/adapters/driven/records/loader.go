// Package records loads platform records from JSON, YAML and TOML files.
//
// A file holds either a bare list of records or a document with a top-level
// "records" list. TOML has no top-level arrays, so TOML files always use the
// [[records]] form.
package records

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/core/ports/driven"
	"github.com/custodia-labs/hybrid-rag/internal/logger"
)

// Ensure FileLoader implements the interface.
var _ driven.RecordLoader = (*FileLoader)(nil)

// Format is a supported record file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// envelope is the keyed form of a records file.
type envelope struct {
	Records []domain.PlatformRecord `json:"records" yaml:"records" toml:"records"`
}

// FileLoader reads records from local files, picking the decoder by extension.
type FileLoader struct{}

// NewFileLoader creates a record file loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Supports reports whether path has a known extension.
func (l *FileLoader) Supports(path string) bool {
	_, ok := FormatOf(path)
	return ok
}

// Load reads and decodes every record in path.
func (l *FileLoader) Load(ctx context.Context, path string) ([]domain.PlatformRecord, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("load %s: %w", path, domain.ErrUnsupportedFormat)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	records, err := Decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	logger.Debug("Loaded %d records from %s (%s)", len(records), path, format)
	return records, nil
}

// Decode parses data in the given format.
// Blank input decodes to no records.
func Decode(format Format, data []byte) ([]domain.PlatformRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch format {
	case FormatJSON:
		return decodeJSON(trimmed)
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		var env envelope
		if err := toml.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		return env.Records, nil
	default:
		return nil, fmt.Errorf("format %q: %w", format, domain.ErrUnsupportedFormat)
	}
}

func decodeJSON(data []byte) ([]domain.PlatformRecord, error) {
	if data[0] == '[' {
		var list []domain.PlatformRecord
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return env.Records, nil
}

func decodeYAML(data []byte) ([]domain.PlatformRecord, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var list []domain.PlatformRecord
		if err := node.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var env envelope
	if err := node.Decode(&env); err != nil {
		return nil, err
	}
	return env.Records, nil
}
