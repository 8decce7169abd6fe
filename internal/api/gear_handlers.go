package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/service"
)

// === DTOs ===

// WebbingResponse is a webbing with its brand name.
type WebbingResponse struct {
	domain.Webbing
	BrandName string `json:"brand_name" doc:"Name of the referenced brand"`
}

// WeblockResponse is a weblock with its brand name.
type WeblockResponse struct {
	domain.Weblock
	BrandName string `json:"brand_name" doc:"Name of the referenced brand"`
}

// RollerResponse is a roller with its brand name.
type RollerResponse struct {
	domain.Roller
	BrandName string `json:"brand_name" doc:"Name of the referenced brand"`
}

func webbingView(b service.Branded[domain.Webbing]) WebbingResponse {
	return WebbingResponse{Webbing: *b.Entity, BrandName: b.BrandName}
}

func weblockView(b service.Branded[domain.Weblock]) WeblockResponse {
	return WeblockResponse{Weblock: *b.Entity, BrandName: b.BrandName}
}

func rollerView(b service.Branded[domain.Roller]) RollerResponse {
	return RollerResponse{Roller: *b.Entity, BrandName: b.BrandName}
}

// gearRoutes serves one gear kind. Create bodies use the patch shape: every
// field is optional on the wire and required fields are enforced by the
// service validator, which reports them all at once.
type gearRoutes[T any, PT service.GearRecord[T], P service.Patch[T], V any] struct {
	svc  *service.GearService[T, PT, P]
	view func(service.Branded[T]) V
}

func registerGearRoutes[T any, PT service.GearRecord[T], P service.Patch[T], V any](
	s *Server,
	svc *service.GearService[T, PT, P],
	collection string,
	view func(service.Branded[T]) V,
) {
	h := &gearRoutes[T, PT, P, V]{svc: svc, view: view}
	kind := svc.Kind()
	title := kind.Title()
	path := "/api/v1/" + collection
	tags := []string{title + "s"}

	huma.Register(s.api, huma.Operation{
		OperationID:   "create" + title,
		Method:        http.MethodPost,
		Path:          path,
		Summary:       "Create " + string(kind),
		Description:   "Creates a " + string(kind) + " referencing an existing brand",
		Tags:          tags,
		DefaultStatus: http.StatusCreated,
	}, h.create)

	huma.Register(s.api, huma.Operation{
		OperationID: "list" + title + "s",
		Method:      http.MethodGet,
		Path:        path,
		Summary:     "List " + collection,
		Description: "Returns a page of " + collection + " ordered by id",
		Tags:        tags,
	}, h.list)

	huma.Register(s.api, huma.Operation{
		OperationID: "get" + title,
		Method:      http.MethodGet,
		Path:        path + "/{id}",
		Summary:     "Get " + string(kind),
		Description: "Returns a " + string(kind) + " by ID",
		Tags:        tags,
	}, h.get)

	huma.Register(s.api, huma.Operation{
		OperationID: "update" + title,
		Method:      http.MethodPatch,
		Path:        path + "/{id}",
		Summary:     "Update " + string(kind),
		Description: "Merges the given fields into a " + string(kind),
		Tags:        tags,
	}, h.update)

	huma.Register(s.api, huma.Operation{
		OperationID: "delete" + title,
		Method:      http.MethodDelete,
		Path:        path + "/{id}",
		Summary:     "Delete " + string(kind),
		Description: "Deletes a " + string(kind),
		Tags:        tags,
	}, h.delete)
}

// === Handlers ===

func (h *gearRoutes[T, PT, P, V]) create(ctx context.Context, input *BodyInput[P]) (*Output[V], error) {
	e := new(T)
	input.Body.Apply(e)

	created, err := h.svc.Create(ctx, e)
	if err != nil {
		return nil, err
	}
	return &Output[V]{Body: h.view(*created)}, nil
}

func (h *gearRoutes[T, PT, P, V]) list(ctx context.Context, input *PageInput) (*Output[[]V], error) {
	items, err := h.svc.List(ctx, input.Page())
	if err != nil {
		return nil, err
	}

	resp := make([]V, len(items))
	for i, item := range items {
		resp[i] = h.view(item)
	}
	return &Output[[]V]{Body: resp}, nil
}

func (h *gearRoutes[T, PT, P, V]) get(ctx context.Context, input *IDInput) (*Output[V], error) {
	got, err := h.svc.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &Output[V]{Body: h.view(*got)}, nil
}

func (h *gearRoutes[T, PT, P, V]) update(ctx context.Context, input *UpdateInput[P]) (*Output[V], error) {
	updated, err := h.svc.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &Output[V]{Body: h.view(*updated)}, nil
}

func (h *gearRoutes[T, PT, P, V]) delete(ctx context.Context, input *IDInput) (*OKOutput, error) {
	if err := h.svc.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return &OKOutput{Body: OKResponse{OK: true}}, nil
}
