package api

import (
	"github.com/slackdb/slackdb-server/internal/store"
)

// PageInput is the shared pagination window for list endpoints.
type PageInput struct {
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Number of entries to skip"`
	Limit  int `query:"limit" minimum:"1" maximum:"100" default:"10" doc:"Maximum number of entries to return"`
}

// Page converts the query window into a store page.
func (p PageInput) Page() store.Page {
	return store.Page{Offset: p.Offset, Limit: p.Limit}
}

// IDInput addresses one entity by its integer id.
type IDInput struct {
	ID int64 `path:"id" minimum:"1" doc:"Entity ID"`
}

// OKResponse acknowledges a deletion.
type OKResponse struct {
	OK bool `json:"ok" doc:"Always true"`
}

// OKOutput wraps the deletion acknowledgement for Huma.
type OKOutput struct {
	Body OKResponse
}

// BodyInput carries a JSON request body.
type BodyInput[B any] struct {
	Body B
}

// UpdateInput carries an id and a JSON patch body.
type UpdateInput[B any] struct {
	ID   int64 `path:"id" minimum:"1" doc:"Entity ID"`
	Body B
}

// Output wraps a response body for Huma.
type Output[B any] struct {
	Body B
}
