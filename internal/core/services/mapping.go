package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/hybrid-rag/internal/core/domain"
	"github.com/custodia-labs/hybrid-rag/internal/textproc"
)

// DefaultRecordSource labels documents mapped from records with no source.
const DefaultRecordSource = "platform-catalog"

var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("hybrid-rag:record"))

// MapRecord converts a platform record into a document.
//
// The content is a sequence of labelled sections in a fixed order:
// Platform, Description, Category, Features, Integrations, Pricing.
// Empty sections are left out, so an empty record maps to empty content.
func MapRecord(rec domain.PlatformRecord) domain.Document {
	var b strings.Builder
	writeSection(&b, "Platform", rec.Name)
	writeSection(&b, "Description", rec.Description)
	writeSection(&b, "Category", rec.Category)
	writeSection(&b, "Features", strings.Join(nonEmpty(rec.Features), ", "))
	writeSection(&b, "Integrations", strings.Join(nonEmpty(rec.Integrations), ", "))

	tiers := make([]string, 0, len(rec.Pricing))
	for _, p := range rec.Pricing {
		if s := p.String(); s != "" {
			tiers = append(tiers, s)
		}
	}
	writeSection(&b, "Pricing", strings.Join(tiers, "; "))

	content := b.String()
	source := rec.Source
	if source == "" {
		source = DefaultRecordSource
	}

	return domain.Document{
		ID:      recordID(rec),
		Content: content,
		Metadata: domain.DocumentMetadata{
			Title:       strings.TrimSpace(rec.Name),
			Category:    rec.Category,
			Platform:    rec.Platform,
			TechStack:   append([]string(nil), rec.TechStack...),
			Source:      source,
			LastUpdated: rec.UpdatedAt,
			WordCount:   textproc.WordCount(content),
		},
	}
}

// MapRecords converts records in order.
func MapRecords(records []domain.PlatformRecord) []domain.Document {
	docs := make([]domain.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, MapRecord(rec))
	}
	return docs
}

// recordID prefers the record ID, then a name-derived UUID. Records with
// neither get an ID at indexing time.
func recordID(rec domain.PlatformRecord) string {
	if id := strings.TrimSpace(rec.ID); id != "" {
		return id
	}
	if name := strings.TrimSpace(rec.Name); name != "" {
		return uuid.NewSHA1(recordNamespace, []byte(strings.ToLower(name))).String()
	}
	return ""
}

// writeSection appends "Label: value." on its own line. The period is only
// added when value does not already end a sentence.
func writeSection(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	if !strings.HasSuffix(value, ".") && !strings.HasSuffix(value, "!") && !strings.HasSuffix(value, "?") {
		b.WriteByte('.')
	}
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
