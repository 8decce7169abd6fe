package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/slackdb/slackdb-server/internal/config"
	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/search"
	"github.com/slackdb/slackdb-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
// SearchIndex is nil when search is disabled.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.SearchIndex == nil {
		return nil
	}
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search disabled by configuration")
		return &SearchIndexHandle{}, nil
	}

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Store.DataPath,
		Logger:   log.Component("search"),
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service. Without an index the
// service answers every query with service.ErrSearchDisabled.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var catalog *search.Catalog
	if indexHandle.SearchIndex != nil {
		catalog = search.NewCatalog(indexHandle.SearchIndex, storeHandle.Store, log.Component("search"))
	}
	return service.NewSearchService(catalog, log.Component("search_service")), nil
}

// ReindexIfNeeded rebuilds an empty index over a non-empty catalog.
// Should be called after seeding.
func ReindexIfNeeded(ctx context.Context, i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !searchService.Enabled() {
		return
	}
	if docCount, _ := searchService.DocumentCount(); docCount > 0 {
		return
	}

	stats, err := service.Stats(ctx, storeHandle.Store)
	if err != nil || stats.Total == 0 {
		return
	}

	log.Info("Search index is empty but the catalog is not, reindexing", "entities", stats.Total)
	if err := searchService.Reindex(ctx); err != nil {
		log.Error("Initial search reindex failed", "error", err)
		return
	}
	count, _ := searchService.DocumentCount()
	log.Info("Initial search reindex completed", "documents", count)
}
