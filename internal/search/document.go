// Package search provides full-text search over the catalog using Bleve.
// Brands and the three gear kinds share one index, discriminated by type,
// with facets on type, material and brand.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// DocType is the kind of entity a document represents.
type DocType = domain.Kind

// SearchDocument is the unified document structure for the Bleve index.
// Gear documents carry their brand name so "edelrid lock" finds Edelrid
// weblocks without a join.
type SearchDocument struct {
	// Identity
	ID       string  `json:"id"`        // "<kind>:<entity id>"
	Type     DocType `json:"type"`      // brand, webbing, weblock, roller
	EntityID int64   `json:"entity_id"` // store id

	Name        string `json:"name"`
	BrandName   string `json:"brand_name,omitempty"`
	Material    string `json:"material,omitempty"`
	Description string `json:"description,omitempty"`
	Country     string `json:"country,omitempty"` // brands only

	Width            int     `json:"width,omitempty"`
	BreakingStrength float64 `json:"breaking_strength,omitempty"`
	ISACertified     bool    `json:"isa_certified,omitempty"`
}

// DocumentID returns the index id for an entity.
func DocumentID(kind domain.Kind, id int64) string {
	return string(kind) + ":" + strconv.FormatInt(id, 10)
}

// ParseDocumentID splits an index id into kind and entity id.
func ParseDocumentID(docID string) (domain.Kind, int64, error) {
	kind, raw, ok := strings.Cut(docID, ":")
	if !ok {
		return "", 0, fmt.Errorf("malformed document id %q", docID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed document id %q: %w", docID, err)
	}
	return domain.Kind(kind), id, nil
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
func (d *SearchDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":            d.ID,
		"type":          string(d.Type),
		"entity_id":     float64(d.EntityID),
		"name":          d.Name,
		"isa_certified": d.ISACertified,
	}

	// Optional fields - only add if non-empty
	if d.BrandName != "" {
		m["brand_name"] = d.BrandName
	}
	if d.Material != "" {
		m["material"] = d.Material
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.Country != "" {
		m["country"] = d.Country
	}
	if d.Width > 0 {
		m["width"] = float64(d.Width)
	}
	if d.BreakingStrength > 0 {
		m["breaking_strength"] = d.BreakingStrength
	}

	return m
}

// BrandToSearchDocument converts a brand to a SearchDocument.
func BrandToSearchDocument(b *domain.Brand) *SearchDocument {
	return &SearchDocument{
		ID:          DocumentID(domain.KindBrand, b.ID),
		Type:        domain.KindBrand,
		EntityID:    b.ID,
		Name:        b.Name,
		BrandName:   b.Name,
		Description: deref(b.Description),
		Country:     deref(b.Country),
	}
}

// gearDocument fills the fields shared by every gear kind. The brand name
// is supplied by the caller; this package does not read the store.
func gearDocument(kind domain.Kind, id int64, g *domain.GearSpec, material, brandName string) *SearchDocument {
	doc := &SearchDocument{
		ID:           DocumentID(kind, id),
		Type:         kind,
		EntityID:     id,
		Name:         g.Name,
		BrandName:    brandName,
		Material:     material,
		Description:  deref(g.Description),
		Width:        g.Width,
		ISACertified: g.ISACertified,
	}
	if g.BreakingStrength != nil {
		doc.BreakingStrength = *g.BreakingStrength
	}
	return doc
}

// WebbingToSearchDocument converts a webbing to a SearchDocument.
func WebbingToSearchDocument(w *domain.Webbing, brandName string) *SearchDocument {
	return gearDocument(domain.KindWebbing, w.ID, &w.GearSpec, string(w.Material), brandName)
}

// WeblockToSearchDocument converts a weblock to a SearchDocument.
func WeblockToSearchDocument(w *domain.Weblock, brandName string) *SearchDocument {
	return gearDocument(domain.KindWeblock, w.ID, &w.GearSpec, string(w.Material), brandName)
}

// RollerToSearchDocument converts a roller to a SearchDocument.
func RollerToSearchDocument(r *domain.Roller, brandName string) *SearchDocument {
	return gearDocument(domain.KindRoller, r.ID, &r.GearSpec, string(r.Material), brandName)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
