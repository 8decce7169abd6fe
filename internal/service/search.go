package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/search"
)

// ErrSearchDisabled is returned when the server runs without a search index.
var ErrSearchDisabled = errors.New("search is disabled")

// SearchService bridges the catalog index with the CRUD services.
// A nil catalog disables search: queries fail with ErrSearchDisabled and
// index maintenance becomes a no-op.
type SearchService struct {
	catalog *search.Catalog
	logger  *slog.Logger
}

// NewSearchService creates a new search service. catalog may be nil.
func NewSearchService(catalog *search.Catalog, logger *slog.Logger) *SearchService {
	return &SearchService{
		catalog: catalog,
		logger:  logger,
	}
}

// Enabled reports whether an index is attached.
func (s *SearchService) Enabled() bool {
	return s != nil && s.catalog != nil
}

// Search runs a catalog query.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if !s.Enabled() {
		return nil, ErrSearchDisabled
	}
	return s.catalog.Search(ctx, params)
}

// Reindex rebuilds the index from the store.
func (s *SearchService) Reindex(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.catalog.Reindex(ctx); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	return nil
}

// Refresh rebuilds the index, logging instead of failing.
func (s *SearchService) Refresh(ctx context.Context) {
	if err := s.Reindex(ctx); err != nil {
		s.logger.Warn("search refresh failed", "error", err)
	}
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	if !s.Enabled() {
		return 0, ErrSearchDisabled
	}
	return s.catalog.Index().DocumentCount()
}

// Put indexes a created or updated entity. Index failures are logged; the
// store stays the source of truth and the next reindex repairs the gap.
func (s *SearchService) Put(ctx context.Context, e domain.Entity) {
	if !s.Enabled() {
		return
	}
	if err := s.catalog.Put(ctx, e); err != nil {
		s.logger.Warn("failed to index entity",
			"kind", e.Kind(),
			"id", e.GetID(),
			"error", err,
		)
		return
	}
	s.logger.Debug("indexed entity", "kind", e.Kind(), "id", e.GetID())
}

// Remove drops a deleted entity from the index.
func (s *SearchService) Remove(kind domain.Kind, id int64) {
	if !s.Enabled() {
		return
	}
	if err := s.catalog.Remove(kind, id); err != nil {
		s.logger.Warn("failed to remove entity from index",
			"kind", kind,
			"id", id,
			"error", err,
		)
	}
}
