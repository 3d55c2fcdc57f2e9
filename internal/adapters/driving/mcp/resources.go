package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
)

const (
	uriScheme    = "hybrid-rag://"
	documentsURI = uriScheme + "documents/"

	mimeJSON = "application/json"
	mimeText = "text/plain"
)

// DocumentMetadataOutput is the JSON body of the document metadata resource.
type DocumentMetadataOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Category    string   `json:"category,omitempty"`
	Platform    string   `json:"platform,omitempty"`
	TechStack   []string `json:"tech_stack,omitempty"`
	Source      string   `json:"source,omitempty"`
	LastUpdated string   `json:"last_updated,omitempty"`
	WordCount   int      `json:"word_count"`
}

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Statistics of the current search index",
		MIMEType:    mimeJSON,
	}, s.handleStatsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentsURI + "{documentId}",
		Name:        "document-content",
		Description: "Full text of an indexed source document",
		MIMEType:    mimeText,
	}, s.handleDocumentContentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentsURI + "{documentId}/metadata",
		Name:        "document-metadata",
		Description: "Tags and word count of an indexed source document",
		MIMEType:    mimeJSON,
	}, s.handleDocumentMetadataResource)
}

func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, toStatsOutput(s.ports.Retrieval.Stats(ctx)))
}

func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, view := parseDocumentURI(req.Params.URI)
	if id == "" || view != "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.lookupDocument(ctx, req.Params.URI, id)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: req.Params.URI, MIMEType: mimeText, Text: doc.Content}},
	}, nil
}

func (s *Server) handleDocumentMetadataResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, view := parseDocumentURI(req.Params.URI)
	if id == "" || view != "metadata" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.lookupDocument(ctx, req.Params.URI, id)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, toDocumentMetadataOutput(doc))
}

// lookupDocument maps a missing document to the protocol's not-found error.
func (s *Server) lookupDocument(ctx context.Context, uri, id string) (*domain.Document, error) {
	doc, err := s.ports.Retrieval.Document(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return doc, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: uri, MIMEType: mimeJSON, Text: string(data)}},
	}, nil
}

func toDocumentMetadataOutput(doc *domain.Document) DocumentMetadataOutput {
	out := DocumentMetadataOutput{
		ID:        doc.ID,
		Title:     doc.Metadata.Title,
		Category:  doc.Metadata.Category,
		Platform:  doc.Metadata.Platform,
		TechStack: doc.Metadata.TechStack,
		Source:    doc.Metadata.Source,
		WordCount: doc.Metadata.WordCount,
	}
	if !doc.Metadata.LastUpdated.IsZero() {
		out.LastUpdated = doc.Metadata.LastUpdated.Format(time.RFC3339)
	}
	return out
}

// parseDocumentURI splits hybrid-rag://documents/{id}[/{view}] into its
// document ID and optional view. Both are empty for other URIs.
func parseDocumentURI(uri string) (id, view string) {
	rest, ok := strings.CutPrefix(uri, documentsURI)
	if !ok {
		return "", ""
	}
	id, view, _ = strings.Cut(rest, "/")
	return id, view
}
