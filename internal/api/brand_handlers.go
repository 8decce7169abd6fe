package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/slackdb/slackdb-server/internal/domain"
)

func (s *Server) registerBrandRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "createBrand",
		Method:        http.MethodPost,
		Path:          "/api/v1/brands",
		Summary:       "Create brand",
		Description:   "Creates a brand. Brand names are unique.",
		Tags:          []string{"Brands"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBrand)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBrands",
		Method:      http.MethodGet,
		Path:        "/api/v1/brands",
		Summary:     "List brands",
		Description: "Returns a page of brands ordered by id",
		Tags:        []string{"Brands"},
	}, s.handleListBrands)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBrand",
		Method:      http.MethodGet,
		Path:        "/api/v1/brands/{id}",
		Summary:     "Get brand",
		Description: "Returns a brand with the names of its webbings, weblocks and rollers",
		Tags:        []string{"Brands"},
	}, s.handleGetBrand)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBrand",
		Method:      http.MethodPatch,
		Path:        "/api/v1/brands/{id}",
		Summary:     "Update brand",
		Description: "Merges the given fields into a brand",
		Tags:        []string{"Brands"},
	}, s.handleUpdateBrand)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBrand",
		Method:      http.MethodDelete,
		Path:        "/api/v1/brands/{id}",
		Summary:     "Delete brand",
		Description: "Deletes a brand that no gear references",
		Tags:        []string{"Brands"},
	}, s.handleDeleteBrand)
}

// === DTOs ===

// BrandDetailResponse is a brand with the names of the gear it makes.
type BrandDetailResponse struct {
	domain.Brand
	WebbingNames []string `json:"webbing_names" doc:"Names of webbings made by this brand"`
	WeblockNames []string `json:"weblock_names" doc:"Names of weblocks made by this brand"`
	RollerNames  []string `json:"roller_names" doc:"Names of rollers made by this brand"`
}

// === Handlers ===

func (s *Server) handleCreateBrand(ctx context.Context, input *BodyInput[domain.BrandPatch]) (*Output[*domain.Brand], error) {
	b := domain.NewBrand("")
	input.Body.Apply(b)

	created, err := s.services.Brand.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	return &Output[*domain.Brand]{Body: created}, nil
}

func (s *Server) handleListBrands(ctx context.Context, input *PageInput) (*Output[[]*domain.Brand], error) {
	brands, err := s.services.Brand.List(ctx, input.Page())
	if err != nil {
		return nil, err
	}
	if brands == nil {
		brands = []*domain.Brand{}
	}
	return &Output[[]*domain.Brand]{Body: brands}, nil
}

func (s *Server) handleGetBrand(ctx context.Context, input *IDInput) (*Output[BrandDetailResponse], error) {
	d, err := s.services.Brand.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &Output[BrandDetailResponse]{Body: BrandDetailResponse{
		Brand:        *d.Brand,
		WebbingNames: d.WebbingNames,
		WeblockNames: d.WeblockNames,
		RollerNames:  d.RollerNames,
	}}, nil
}

func (s *Server) handleUpdateBrand(ctx context.Context, input *UpdateInput[domain.BrandPatch]) (*Output[*domain.Brand], error) {
	b, err := s.services.Brand.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &Output[*domain.Brand]{Body: b}, nil
}

func (s *Server) handleDeleteBrand(ctx context.Context, input *IDInput) (*OKOutput, error) {
	if err := s.services.Brand.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &OKOutput{Body: OKResponse{OK: true}}, nil
}
