package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slackdb/slackdb-server/internal/domain"
	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// GearRecord constrains the pointer form of a gear entity.
type GearRecord[T any] interface {
	*T
	domain.Gear
}

// Branded pairs a gear entity with the name of its brand.
type Branded[T any] struct {
	Entity    *T
	BrandName string
}

// GearService manages one gear kind.
type GearService[T any, PT GearRecord[T], P Patch[T]] struct {
	catalog[T, PT]
}

// NewGearService creates a service for the gear kind served by repo.
func NewGearService[T any, PT GearRecord[T], P Patch[T]](
	kind domain.Kind,
	s store.Store,
	repo func(s store.Store) store.GearRepository[T],
	v *validation.Validator,
	search *SearchService,
	logger *slog.Logger,
) *GearService[T, PT, P] {
	return &GearService[T, PT, P]{
		catalog: catalog[T, PT]{
			kind:      kind,
			store:     s,
			repo:      func(s store.Store) store.Repository[T] { return repo(s) },
			validator: v,
			search:    search,
			logger:    logger.With("component", string(kind)+"_service"),
		},
	}
}

// WebbingService manages webbings.
type WebbingService = GearService[domain.Webbing, *domain.Webbing, domain.WebbingPatch]

// WeblockService manages weblocks.
type WeblockService = GearService[domain.Weblock, *domain.Weblock, domain.WeblockPatch]

// RollerService manages rollers.
type RollerService = GearService[domain.Roller, *domain.Roller, domain.RollerPatch]

// NewWebbingService creates the webbing service.
func NewWebbingService(s store.Store, v *validation.Validator, search *SearchService, logger *slog.Logger) *WebbingService {
	return NewGearService[domain.Webbing, *domain.Webbing, domain.WebbingPatch](domain.KindWebbing, s, store.Store.Webbings, v, search, logger)
}

// NewWeblockService creates the weblock service.
func NewWeblockService(s store.Store, v *validation.Validator, search *SearchService, logger *slog.Logger) *WeblockService {
	return NewGearService[domain.Weblock, *domain.Weblock, domain.WeblockPatch](domain.KindWeblock, s, store.Store.Weblocks, v, search, logger)
}

// NewRollerService creates the roller service.
func NewRollerService(s store.Store, v *validation.Validator, search *SearchService, logger *slog.Logger) *RollerService {
	return NewGearService[domain.Roller, *domain.Roller, domain.RollerPatch](domain.KindRoller, s, store.Store.Rollers, v, search, logger)
}

// Kind returns the gear kind served.
func (g *GearService[T, PT, P]) Kind() domain.Kind { return g.kind }

// Get returns one gear entity with its brand name.
func (g *GearService[T, PT, P]) Get(ctx context.Context, id int64) (*Branded[T], error) {
	e, err := g.get(ctx, id)
	if err != nil {
		return nil, err
	}
	name, err := g.brandName(ctx, PT(e).BrandRef())
	if err != nil {
		return nil, err
	}
	return &Branded[T]{Entity: e, BrandName: name}, nil
}

// List returns a page of gear in id order, each with its brand name.
func (g *GearService[T, PT, P]) List(ctx context.Context, page store.Page) ([]Branded[T], error) {
	items, err := g.list(ctx, page)
	if err != nil {
		return nil, err
	}

	names := make(map[int64]string)
	out := make([]Branded[T], 0, len(items))
	for _, e := range items {
		brandID := PT(e).BrandRef()
		name, ok := names[brandID]
		if !ok {
			if name, err = g.brandName(ctx, brandID); err != nil {
				return nil, err
			}
			names[brandID] = name
		}
		out = append(out, Branded[T]{Entity: e, BrandName: name})
	}
	return out, nil
}

// Create validates e, checks that its brand exists and persists it.
func (g *GearService[T, PT, P]) Create(ctx context.Context, e *T) (*Branded[T], error) {
	name, err := g.requireBrand(ctx, PT(e).BrandRef())
	if err != nil {
		return nil, err
	}
	if err := g.insert(ctx, e); err != nil {
		return nil, err
	}
	return &Branded[T]{Entity: e, BrandName: name}, nil
}

// Update merges p into the stored entity. Moving gear to another brand
// requires that brand to exist.
func (g *GearService[T, PT, P]) Update(ctx context.Context, id int64, p P) (*Branded[T], error) {
	var name string
	e, err := g.patch(ctx, id, p, func(e *T) error {
		var err error
		name, err = g.requireBrand(ctx, PT(e).BrandRef())
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Branded[T]{Entity: e, BrandName: name}, nil
}

// Delete removes the entity.
func (g *GearService[T, PT, P]) Delete(ctx context.Context, id int64) error {
	return g.remove(ctx, id)
}

// Count returns the number of stored entities.
func (g *GearService[T, PT, P]) Count(ctx context.Context) (int, error) {
	return g.count(ctx)
}

// requireBrand rejects references to brands that do not exist.
func (g *GearService[T, PT, P]) requireBrand(ctx context.Context, brandID int64) (string, error) {
	if brandID <= 0 {
		return "", domainerrors.ValidationWithDetails("brand_id is required",
			map[string]string{"brand_id": "is required"})
	}
	b, err := g.store.Brands().Get(ctx, brandID)
	if errors.Is(err, store.ErrNotFound) {
		return "", domainerrors.ValidationWithDetails("brand does not exist",
			map[string]string{"brand_id": fmt.Sprintf("Brand %d not found", brandID)})
	}
	if err != nil {
		return "", err
	}
	return b.Name, nil
}

// brandName looks up the name for an existing reference. A dangling
// reference yields an empty name rather than failing the read.
func (g *GearService[T, PT, P]) brandName(ctx context.Context, brandID int64) (string, error) {
	b, err := g.store.Brands().Get(ctx, brandID)
	if errors.Is(err, store.ErrNotFound) {
		g.logger.Warn("gear references missing brand", "brand_id", brandID)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return b.Name, nil
}
