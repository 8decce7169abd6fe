package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// Sort orders accepted by SearchParams.SortBy.
const (
	SortRelevance = "relevance"
	SortName      = "name"
	SortWidth     = "width"
	SortStrength  = "strength"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string        // User's search query
	Kinds []domain.Kind // Document kinds to include (empty = all)

	// Filters
	Material     string  // Exact material, e.g. "Polyester"
	Brand        string  // Exact brand name
	ISACertified bool    // Only ISA certified gear
	MinWidth     int     // Millimetres
	MaxWidth     int     // Millimetres, 0 = unbounded
	MinStrength  float64 // kN

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "name", "width", "strength"
	SortOrder string // "asc", "desc"

	IncludeFacets bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         10,
		SortBy:        SortRelevance,
		SortOrder:     "desc",
		IncludeFacets: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitzero"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID               string            `json:"id"`
	Type             DocType           `json:"type"`
	EntityID         int64             `json:"entity_id"`
	Score            float64           `json:"score"`
	Name             string            `json:"name"`
	BrandName        string            `json:"brand_name,omitempty"`
	Material         string            `json:"material,omitempty"`
	Width            int               `json:"width,omitempty"`
	BreakingStrength float64           `json:"breaking_strength,omitempty"`
	ISACertified     bool              `json:"isa_certified,omitempty"`
	Highlights       map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Types     []FacetCount `json:"types,omitempty"`
	Materials []FacetCount `json:"materials,omitempty"`
	Brands    []FacetCount `json:"brands,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// facetFields maps index fields to the facet they fill.
var facetFields = []string{"type", "material", "brand_exact"} //nolint:gochecknoglobals // fixed

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.IncludeFacets {
		for _, field := range facetFields {
			searchRequest.AddFacet(field, bleve.NewFacetRequest(field, 20)) // Top 20 values
		}
	}

	if params.Query != "" {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("brand_name")
	}

	searchRequest.Fields = []string{
		"type", "entity_id", "name", "brand_name", "material",
		"width", "breaking_strength", "isa_certified",
	}

	searchResult, err := s.idx.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if t, ok := hit.Fields["type"].(string); ok {
			searchHit.Type = DocType(t)
		}
		if id, ok := hit.Fields["entity_id"].(float64); ok {
			searchHit.EntityID = int64(id)
		}
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if b, ok := hit.Fields["brand_name"].(string); ok {
			searchHit.BrandName = b
		}
		if m, ok := hit.Fields["material"].(string); ok {
			searchHit.Material = m
		}
		if w, ok := hit.Fields["width"].(float64); ok {
			searchHit.Width = int(w)
		}
		if bs, ok := hit.Fields["breaking_strength"].(float64); ok {
			searchHit.BreakingStrength = bs
		}
		if isa, ok := hit.Fields["isa_certified"].(bool); ok {
			searchHit.ISACertified = isa
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
//
// Text matches name first, then brand name, then description. Searching
// "edelrid" should rank the brand itself above its gear, and its gear above
// gear that merely mentions Edelrid in the description.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(q)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		brandMatch := bleve.NewMatchQuery(q)
		brandMatch.SetField("brand_name")
		brandMatch.SetBoost(1.5)
		textQueries = append(textQueries, brandMatch)

		descMatch := bleve.NewMatchQuery(q)
		descMatch.SetField("description")
		descMatch.SetBoost(0.5)
		textQueries = append(textQueries, descMatch)

		// Typo tolerance on name
		fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(q) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if len(params.Kinds) > 0 {
		kindQueries := make([]query.Query, len(params.Kinds))
		for i, k := range params.Kinds {
			tq := bleve.NewTermQuery(string(k))
			tq.SetField("type")
			kindQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(kindQueries...))
	}

	if params.Material != "" {
		mq := bleve.NewTermQuery(params.Material)
		mq.SetField("material")
		queries = append(queries, mq)
	}

	if params.Brand != "" {
		bq := bleve.NewTermQuery(params.Brand)
		bq.SetField("brand_exact")
		queries = append(queries, bq)
	}

	if params.ISACertified {
		iq := bleve.NewBoolFieldQuery(true)
		iq.SetField("isa_certified")
		queries = append(queries, iq)
	}

	if params.MinWidth > 0 || params.MaxWidth > 0 {
		lo := float64(params.MinWidth)
		hi := math.MaxFloat64
		if params.MaxWidth > 0 {
			hi = float64(params.MaxWidth)
		}
		inclusive := true
		rangeQuery := bleve.NewNumericRangeInclusiveQuery(&lo, &hi, &inclusive, &inclusive)
		rangeQuery.SetField("width")
		queries = append(queries, rangeQuery)
	}

	if params.MinStrength > 0 {
		lo := params.MinStrength
		rangeQuery := bleve.NewNumericRangeQuery(&lo, nil)
		rangeQuery.SetField("breaking_strength")
		queries = append(queries, rangeQuery)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	desc := params.SortOrder == "desc"
	switch params.SortBy {
	case SortName:
		if desc {
			req.SortBy([]string{"-name_sort", "_id"})
		} else {
			req.SortBy([]string{"name_sort", "_id"})
		}
	case SortWidth:
		if desc {
			req.SortBy([]string{"-width", "name_sort"})
		} else {
			req.SortBy([]string{"width", "name_sort"})
		}
	case SortStrength:
		if desc {
			req.SortBy([]string{"-breaking_strength", "name_sort"})
		} else {
			req.SortBy([]string{"breaking_strength", "name_sort"})
		}
	default:
		// Ties on score fall back to id so paging is stable.
		req.SortBy([]string{"-_score", "_id"})
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	return SearchFacets{
		Types:     facetCounts(result, "type"),
		Materials: facetCounts(result, "material"),
		Brands:    facetCounts(result, "brand_exact"),
	}
}

func facetCounts(result *bleve.SearchResult, field string) []FacetCount {
	facet, ok := result.Facets[field]
	if !ok || facet.Terms == nil {
		return nil
	}
	var counts []FacetCount
	for _, term := range facet.Terms.Terms() {
		counts = append(counts, FacetCount{Value: term.Term, Count: term.Count})
	}
	return counts
}
