package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/slackdb/slackdb-server/internal/domain"
	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
	"github.com/slackdb/slackdb-server/internal/store"
)

// ErrMissingBrand is returned for records without a brand name.
var ErrMissingBrand = domainerrors.Validation("brand name is required")

// BrandResolver maps brand names to ids, creating brands on first sight.
// A resolver serves one batch; its cache is discarded with it.
type BrandResolver struct {
	brands  store.BrandRepository
	cache   map[string]int64
	created int
	logger  *slog.Logger
}

// NewBrandResolver creates a resolver backed by brands. New brands are
// committed immediately, outside any gear transaction.
func NewBrandResolver(brands store.BrandRepository, logger *slog.Logger) *BrandResolver {
	return &BrandResolver{
		brands: brands,
		cache:  make(map[string]int64),
		logger: logger,
	}
}

// Resolve returns the id of the brand called name. Matching is exact and
// case-sensitive after trimming.
func (r *BrandResolver) Resolve(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrMissingBrand
	}
	if id, ok := r.cache[name]; ok {
		return id, nil
	}

	id, err := r.lookupOrCreate(ctx, name)
	if err != nil {
		return 0, err
	}
	r.cache[name] = id
	return id, nil
}

// Created reports how many brands this resolver inserted.
func (r *BrandResolver) Created() int {
	return r.created
}

func (r *BrandResolver) lookupOrCreate(ctx context.Context, name string) (int64, error) {
	existing, err := r.brands.FindByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, fmt.Errorf("find brand %q: %w", name, err)
	}

	brand := domain.NewBrand(name)
	if err := r.brands.Insert(ctx, brand); err != nil {
		// Another writer created it between lookup and insert.
		if errors.Is(err, store.ErrAlreadyExists) {
			existing, findErr := r.brands.FindByName(ctx, name)
			if findErr != nil {
				return 0, fmt.Errorf("find brand %q: %w", name, findErr)
			}
			return existing.ID, nil
		}
		return 0, fmt.Errorf("create brand %q: %w", name, err)
	}

	r.created++
	if r.logger != nil {
		r.logger.Info("brand created", "brand", name, "brand_id", brand.ID)
	}
	return brand.ID, nil
}
