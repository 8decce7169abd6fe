package service

import (
	"context"
	"log/slog"

	"github.com/slackdb/slackdb-server/internal/domain"
	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// BrandDetail is a brand together with the names of the gear it makes.
type BrandDetail struct {
	Brand        *domain.Brand
	WebbingNames []string
	WeblockNames []string
	RollerNames  []string
}

// References returns the total number of gear entities naming the brand.
func (d *BrandDetail) References() int {
	return len(d.WebbingNames) + len(d.WeblockNames) + len(d.RollerNames)
}

// BrandService manages brands.
type BrandService struct {
	catalog[domain.Brand, *domain.Brand]
}

// NewBrandService creates a new brand service.
func NewBrandService(s store.Store, v *validation.Validator, search *SearchService, logger *slog.Logger) *BrandService {
	return &BrandService{
		catalog: catalog[domain.Brand, *domain.Brand]{
			kind:      domain.KindBrand,
			store:     s,
			repo:      func(s store.Store) store.Repository[domain.Brand] { return s.Brands() },
			validator: v,
			search:    search,
			logger:    logger.With("component", "brand_service"),
		},
	}
}

// Get returns a brand with the names of all gear referencing it.
func (s *BrandService) Get(ctx context.Context, id int64) (*BrandDetail, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, b)
}

// List returns a page of brands in id order.
func (s *BrandService) List(ctx context.Context, page store.Page) ([]*domain.Brand, error) {
	return s.list(ctx, page)
}

// Create persists a new brand. Names are unique.
func (s *BrandService) Create(ctx context.Context, b *domain.Brand) (*domain.Brand, error) {
	if err := s.insert(ctx, b); err != nil {
		if domainerrors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExistsf("Brand %q already exists", b.Name).WithCause(err)
		}
		return nil, err
	}
	return b, nil
}

// Update merges p into the stored brand. A rename is pushed into the
// search documents of the brand's gear.
func (s *BrandService) Update(ctx context.Context, id int64, p domain.BrandPatch) (*domain.Brand, error) {
	b, err := s.patch(ctx, id, p, nil)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrAlreadyExists) && p.Name != nil {
			return nil, domainerrors.AlreadyExistsf("Brand %q already exists", *p.Name).WithCause(err)
		}
		return nil, err
	}

	if p.Name != nil {
		s.search.Refresh(ctx)
	}
	return b, nil
}

// Delete removes a brand. Brands still referenced by gear are refused
// with a conflict listing the referencing names.
func (s *BrandService) Delete(ctx context.Context, id int64) error {
	b, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	d, err := s.detail(ctx, b)
	if err != nil {
		return err
	}
	if n := d.References(); n > 0 {
		return domainerrors.Conflictf("Brand %d is still referenced by %d gear entries", id, n).
			WithDetails(map[string][]string{
				"webbing_names": d.WebbingNames,
				"weblock_names": d.WeblockNames,
				"roller_names":  d.RollerNames,
			})
	}
	return s.remove(ctx, id)
}

// Count returns the number of stored brands.
func (s *BrandService) Count(ctx context.Context) (int, error) {
	return s.count(ctx)
}

func (s *BrandService) detail(ctx context.Context, b *domain.Brand) (*BrandDetail, error) {
	webbings, err := s.store.Webbings().NamesByBrand(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	weblocks, err := s.store.Weblocks().NamesByBrand(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	rollers, err := s.store.Rollers().NamesByBrand(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &BrandDetail{
		Brand:        b,
		WebbingNames: nonNil(webbings),
		WeblockNames: nonNil(weblocks),
		RollerNames:  nonNil(rollers),
	}, nil
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
