package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

// Catalog keeps the index in step with the store.
type Catalog struct {
	index  *SearchIndex
	store  store.Store
	logger *slog.Logger
}

// NewCatalog binds an index to the store it mirrors.
func NewCatalog(index *SearchIndex, s store.Store, logger *slog.Logger) *Catalog {
	return &Catalog{index: index, store: s, logger: logger}
}

// Index returns the underlying search index.
func (c *Catalog) Index() *SearchIndex { return c.index }

// Search runs a query against the index.
func (c *Catalog) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	return c.index.Search(ctx, params)
}

// Reindex writes a document for every brand and gear row, then prunes
// documents of rows that no longer exist.
func (c *Catalog) Reindex(ctx context.Context) error {
	start := time.Now()

	docs, err := c.documents(ctx)
	if err != nil {
		return err
	}
	if err := c.index.PutAll(docs); err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		keep[doc.ID] = struct{}{}
	}
	pruned, err := c.index.Prune(keep)
	if err != nil {
		return err
	}

	c.logger.Info("search index rebuilt",
		"documents", len(docs),
		"pruned", pruned,
		"duration", time.Since(start).String(),
	)
	return nil
}

// Put indexes or replaces the document for a single entity. Gear documents
// need the name of the brand they reference.
func (c *Catalog) Put(ctx context.Context, e domain.Entity) error {
	doc, err := c.document(ctx, e)
	if err != nil {
		return err
	}
	return c.index.Put(doc)
}

// Remove drops an entity from the index.
func (c *Catalog) Remove(kind domain.Kind, id int64) error {
	return c.index.Delete(kind, id)
}

func (c *Catalog) document(ctx context.Context, e domain.Entity) (*SearchDocument, error) {
	if b, ok := e.(*domain.Brand); ok {
		return BrandToSearchDocument(b), nil
	}

	g, ok := e.(domain.Gear)
	if !ok {
		return nil, fmt.Errorf("cannot index %T", e)
	}
	brand, err := c.store.Brands().Get(ctx, g.BrandRef())
	if err != nil {
		return nil, fmt.Errorf("brand %d for %s %d: %w", g.BrandRef(), e.Kind(), e.GetID(), err)
	}
	return gearToDocument(g, brand.Name)
}

func gearToDocument(g domain.Gear, brandName string) (*SearchDocument, error) {
	switch v := g.(type) {
	case *domain.Webbing:
		return WebbingToSearchDocument(v, brandName), nil
	case *domain.Weblock:
		return WeblockToSearchDocument(v, brandName), nil
	case *domain.Roller:
		return RollerToSearchDocument(v, brandName), nil
	default:
		return nil, fmt.Errorf("cannot index %T", g)
	}
}

// documents reads the whole catalog. Brands are loaded first so gear
// documents can carry brand names without a lookup per row.
func (c *Catalog) documents(ctx context.Context) ([]*SearchDocument, error) {
	var docs []*SearchDocument
	names := make(map[int64]string)

	err := each(ctx, c.store.Brands(), func(b *domain.Brand) error {
		names[b.ID] = b.Name
		docs = append(docs, BrandToSearchDocument(b))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read brands: %w", err)
	}

	gear := func(g domain.Gear) error {
		doc, err := gearToDocument(g, names[g.BrandRef()])
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	}

	if err := each(ctx, c.store.Webbings(), func(w *domain.Webbing) error { return gear(w) }); err != nil {
		return nil, fmt.Errorf("read webbings: %w", err)
	}
	if err := each(ctx, c.store.Weblocks(), func(w *domain.Weblock) error { return gear(w) }); err != nil {
		return nil, fmt.Errorf("read weblocks: %w", err)
	}
	if err := each(ctx, c.store.Rollers(), func(r *domain.Roller) error { return gear(r) }); err != nil {
		return nil, fmt.Errorf("read rollers: %w", err)
	}

	return docs, nil
}

// each walks a repository page by page in id order.
func each[T any](ctx context.Context, repo store.Repository[T], fn func(*T) error) error {
	page := store.Page{Limit: store.MaxLimit}
	for {
		items, err := repo.List(ctx, page)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
		if len(items) < page.Limit {
			return nil
		}
		page.Offset += page.Limit
	}
}
