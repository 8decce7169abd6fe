package service

import (
	"context"
	"fmt"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

// KindCount is the number of stored entities of one kind.
type KindCount struct {
	Kind  domain.Kind `json:"kind"`
	Count int         `json:"count"`
}

// CatalogStats summarizes the stored catalog.
type CatalogStats struct {
	Kinds          []KindCount `json:"kinds"`
	Total          int         `json:"total"`
	IndexedEntries uint64      `json:"indexed_entries,omitempty"`
}

// Stats counts entities per kind, brands first.
func Stats(ctx context.Context, s store.Store) (*CatalogStats, error) {
	counters := []struct {
		kind  domain.Kind
		count func(context.Context) (int, error)
	}{
		{domain.KindBrand, s.Brands().Count},
		{domain.KindWebbing, s.Webbings().Count},
		{domain.KindWeblock, s.Weblocks().Count},
		{domain.KindRoller, s.Rollers().Count},
	}

	stats := &CatalogStats{Kinds: make([]KindCount, 0, len(counters))}
	for _, c := range counters {
		n, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.kind, err)
		}
		stats.Kinds = append(stats.Kinds, KindCount{Kind: c.kind, Count: n})
		stats.Total += n
	}
	return stats, nil
}

// Stats counts the catalog and, when search is enabled, the index.
func (s *SearchService) Stats(ctx context.Context, st store.Store) (*CatalogStats, error) {
	stats, err := Stats(ctx, st)
	if err != nil {
		return nil, err
	}
	if s.Enabled() {
		if n, err := s.DocumentCount(); err == nil {
			stats.IndexedEntries = n
		}
	}
	return stats, nil
}
