package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/slackdb/slackdb-server/internal/domain"
	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
	"github.com/slackdb/slackdb-server/internal/search"
	"github.com/slackdb/slackdb-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search catalog",
		Description: "Full-text search across brands, webbings, weblocks and rollers",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "reindex",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/reindex",
		Summary:     "Rebuild search index",
		Description: "Rebuilds the search index from the store",
		Tags:        []string{"Search"},
	}, s.handleReindex)
}

// === DTOs ===

// SearchInput contains parameters for searching the catalog.
type SearchInput struct {
	Query       string  `query:"q" maxLength:"200" doc:"Search query. Omit to browse with filters only."`
	Kinds       string  `query:"kind" maxLength:"100" doc:"Comma-separated kinds to search (brand,webbing,weblock,roller). Omit for all."`
	Material    string  `query:"material" maxLength:"50" doc:"Exact material, e.g. Polyester"`
	Brand       string  `query:"brand" maxLength:"200" doc:"Exact brand name"`
	ISA         bool    `query:"isa" doc:"Only ISA certified gear"`
	MinWidth    int     `query:"min_width" minimum:"0" doc:"Minimum width in millimetres"`
	MaxWidth    int     `query:"max_width" minimum:"0" doc:"Maximum width in millimetres"`
	MinStrength float64 `query:"min_strength" minimum:"0" doc:"Minimum breaking strength in kN"`
	Sort        string  `query:"sort" enum:"relevance,name,width,strength" default:"relevance" doc:"Sort field"`
	Order       string  `query:"order" enum:"asc,desc" default:"desc" doc:"Sort order"`
	Offset      int     `query:"offset" minimum:"0" default:"0" doc:"Pagination offset"`
	Limit       int     `query:"limit" minimum:"1" maximum:"100" default:"10" doc:"Maximum number of hits"`
	Facets      bool    `query:"facets" default:"true" doc:"Include facet counts"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

// ReindexResponse reports the size of the rebuilt index.
type ReindexResponse struct {
	Documents uint64 `json:"documents" doc:"Number of indexed documents"`
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	kinds, err := parseKinds(input.Kinds)
	if err != nil {
		return nil, err
	}

	params := search.DefaultSearchParams()
	params.Query = strings.TrimSpace(input.Query)
	params.Kinds = kinds
	params.Material = input.Material
	params.Brand = input.Brand
	params.ISACertified = input.ISA
	params.MinWidth = input.MinWidth
	params.MaxWidth = input.MaxWidth
	params.MinStrength = input.MinStrength
	params.SortBy = input.Sort
	params.SortOrder = input.Order
	params.Offset = input.Offset
	params.Limit = input.Limit
	params.IncludeFacets = input.Facets

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: result}, nil
}

func (s *Server) handleReindex(ctx context.Context, _ *struct{}) (*Output[ReindexResponse], error) {
	if !s.services.Search.Enabled() {
		return nil, service.ErrSearchDisabled
	}
	if err := s.services.Search.Reindex(ctx); err != nil {
		return nil, err
	}
	n, err := s.services.Search.DocumentCount()
	if err != nil {
		return nil, err
	}
	return &Output[ReindexResponse]{Body: ReindexResponse{Documents: n}}, nil
}

// parseKinds splits a comma-separated kind filter. Unknown kinds are a
// validation error rather than an empty result.
func parseKinds(raw string) ([]domain.Kind, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var kinds []domain.Kind
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		k, err := domain.ParseKind(part)
		if err != nil {
			return nil, domainerrors.ValidationWithDetails("invalid kind filter", map[string]string{"kind": err.Error()})
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
