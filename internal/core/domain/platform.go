package domain

import "time"

// PlatformRecord is an external source record describing a technology platform.
// Records are mapped into Documents before indexing.
type PlatformRecord struct {
	ID           string        `json:"id" yaml:"id" toml:"id"`
	Name         string        `json:"name" yaml:"name" toml:"name"`
	Description  string        `json:"description" yaml:"description" toml:"description"`
	Category     string        `json:"category" yaml:"category" toml:"category"`
	Platform     string        `json:"platform,omitempty" yaml:"platform,omitempty" toml:"platform,omitempty"`
	Features     []string      `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
	Integrations []string      `json:"integrations,omitempty" yaml:"integrations,omitempty" toml:"integrations,omitempty"`
	Pricing      []PricingTier `json:"pricing,omitempty" yaml:"pricing,omitempty" toml:"pricing,omitempty"`
	TechStack    []string      `json:"tech_stack,omitempty" yaml:"tech_stack,omitempty" toml:"tech_stack,omitempty"`
	Source       string        `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	UpdatedAt    time.Time     `json:"updated_at,omitempty" yaml:"updated_at,omitempty" toml:"updated_at,omitempty"`
}

// PricingTier is a single pricing option of a platform.
type PricingTier struct {
	Tier  string `json:"tier" yaml:"tier" toml:"tier"`
	Price string `json:"price" yaml:"price" toml:"price"`
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty" toml:"notes,omitempty"`
}

// String renders the tier as a single line, e.g. "Pro: $20/month (billed yearly)".
func (p PricingTier) String() string {
	s := p.Tier
	if p.Price != "" {
		if s != "" {
			s += ": "
		}
		s += p.Price
	}
	if p.Notes != "" {
		s += " (" + p.Notes + ")"
	}
	return s
}
