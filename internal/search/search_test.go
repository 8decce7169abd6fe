package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/logger"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) *SearchIndex {
	t.Helper()

	index, err := NewSearchIndex(Options{
		DataPath: t.TempDir(),
		Logger:   logger.Discard(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return index
}

// fixtureDocs is a small catalog across every kind.
func fixtureDocs() []*SearchDocument {
	return []*SearchDocument{
		{ID: "brand:1", Type: domain.KindBrand, EntityID: 1, Name: "Balance Community", BrandName: "Balance Community"},
		{ID: "brand:2", Type: domain.KindBrand, EntityID: 2, Name: "Edelrid", BrandName: "Edelrid"},
		{
			ID: "webbing:1", Type: domain.KindWebbing, EntityID: 1, Name: "Mantra", BrandName: "Balance Community",
			Material: "Polyester", Width: 25, BreakingStrength: 30, ISACertified: true,
		},
		{
			ID: "webbing:2", Type: domain.KindWebbing, EntityID: 2, Name: "Sonic 2.0", BrandName: "Balance Community",
			Material: "Dyneema", Width: 25, BreakingStrength: 45,
			Description: "Featherweight longline webbing",
		},
		{
			ID: "weblock:1", Type: domain.KindWeblock, EntityID: 1, Name: "Slackline Lock", BrandName: "Edelrid",
			Material: "Aluminum", Width: 35, BreakingStrength: 25, ISACertified: true,
		},
		{
			ID: "roller:1", Type: domain.KindRoller, EntityID: 1, Name: "Line Roller", BrandName: "Edelrid",
			Material: "Stainless Steel",
		},
	}
}

func seededIndex(t *testing.T) *SearchIndex {
	t.Helper()
	index := setupTestIndex(t)
	require.NoError(t, index.PutAll(fixtureDocs()))
	return index
}

func hitIDs(result *SearchResult) []string {
	ids := make([]string, 0, len(result.Hits))
	for _, h := range result.Hits {
		ids = append(ids, h.ID)
	}
	return ids
}

func TestNewSearchIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Put(t *testing.T) {
	index := setupTestIndex(t)

	doc := &SearchDocument{ID: "webbing:9", Type: domain.KindWebbing, EntityID: 9, Name: "Mantra"}
	require.NoError(t, index.Put(doc))

	// Reindexing the same id replaces rather than duplicates.
	require.NoError(t, index.Put(doc))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_PutAll_LargeBatch(t *testing.T) {
	index := setupTestIndex(t)

	docs := make([]*SearchDocument, 1200)
	for i := range docs {
		docs[i] = &SearchDocument{
			ID:       DocumentID(domain.KindWebbing, int64(i+1)),
			Type:     domain.KindWebbing,
			EntityID: int64(i + 1),
			Name:     "Webbing",
		}
	}
	require.NoError(t, index.PutAll(docs))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1200), count)
}

func TestSearchIndex_Delete(t *testing.T) {
	index := seededIndex(t)

	require.NoError(t, index.Delete(domain.KindBrand, 1))
	require.NoError(t, index.Delete(domain.KindBrand, 1), "deleting twice is not an error")

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(fixtureDocs())-1), count)
}

func TestSearchIndex_Prune(t *testing.T) {
	index := seededIndex(t)

	keep := map[string]struct{}{
		DocumentID(domain.KindBrand, 1):   {},
		DocumentID(domain.KindWebbing, 1): {},
	}
	pruned, err := index.Prune(keep)
	require.NoError(t, err)
	assert.Equal(t, len(fixtureDocs())-2, pruned)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	pruned, err = index.Prune(keep)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}

func TestSearchIndex_Search_ByName(t *testing.T) {
	index := seededIndex(t)

	result, err := index.Search(context.Background(), SearchParams{Query: "mantra", Limit: 10})
	require.NoError(t, err)

	require.NotEmpty(t, result.Hits)
	hit := result.Hits[0]
	assert.Equal(t, "webbing:1", hit.ID)
	assert.Equal(t, domain.KindWebbing, hit.Type)
	assert.Equal(t, int64(1), hit.EntityID)
	assert.Equal(t, "Balance Community", hit.BrandName)
	assert.Equal(t, "Polyester", hit.Material)
	assert.Equal(t, 25, hit.Width)
	assert.InDelta(t, 30.0, hit.BreakingStrength, 0.001)
	assert.True(t, hit.ISACertified)
}

func TestSearchIndex_Search_ByBrandName(t *testing.T) {
	index := seededIndex(t)

	result, err := index.Search(context.Background(), SearchParams{Query: "edelrid", Limit: 10})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"brand:2", "weblock:1", "roller:1"}, hitIDs(result))
	assert.Equal(t, "brand:2", result.Hits[0].ID, "the brand itself ranks first")
}

func TestSearchIndex_Search_Prefix(t *testing.T) {
	index := seededIndex(t)

	result, err := index.Search(context.Background(), SearchParams{Query: "slack", Limit: 10})
	require.NoError(t, err)

	assert.Contains(t, hitIDs(result), "weblock:1")
}

func TestSearchIndex_Search_Description(t *testing.T) {
	index := seededIndex(t)

	result, err := index.Search(context.Background(), SearchParams{Query: "longline", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, []string{"webbing:2"}, hitIDs(result))
}

func TestSearchIndex_Search_Filters(t *testing.T) {
	index := seededIndex(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params SearchParams
		want   []string
	}{
		{
			name:   "single kind",
			params: SearchParams{Kinds: []domain.Kind{domain.KindWebbing}},
			want:   []string{"webbing:1", "webbing:2"},
		},
		{
			name:   "several kinds",
			params: SearchParams{Kinds: []domain.Kind{domain.KindWeblock, domain.KindRoller}},
			want:   []string{"weblock:1", "roller:1"},
		},
		{
			name:   "material with spaces",
			params: SearchParams{Material: "Stainless Steel"},
			want:   []string{"roller:1"},
		},
		{
			name:   "brand",
			params: SearchParams{Brand: "Balance Community", Kinds: []domain.Kind{domain.KindWebbing}},
			want:   []string{"webbing:1", "webbing:2"},
		},
		{
			name:   "isa certified",
			params: SearchParams{ISACertified: true},
			want:   []string{"webbing:1", "weblock:1"},
		},
		{
			name:   "width range",
			params: SearchParams{MinWidth: 30, MaxWidth: 40},
			want:   []string{"weblock:1"},
		},
		{
			name:   "minimum strength",
			params: SearchParams{MinStrength: 40},
			want:   []string{"webbing:2"},
		},
		{
			name:   "query and kind",
			params: SearchParams{Query: "edelrid", Kinds: []domain.Kind{domain.KindRoller}},
			want:   []string{"roller:1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Limit = 10
			result, err := index.Search(ctx, tt.params)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, hitIDs(result))
			assert.Equal(t, uint64(len(tt.want)), result.Total)
		})
	}
}

func TestSearchIndex_Search_Pagination(t *testing.T) {
	index := seededIndex(t)
	ctx := context.Background()

	first, err := index.Search(ctx, SearchParams{Limit: 4, SortBy: SortName, SortOrder: "asc"})
	require.NoError(t, err)
	second, err := index.Search(ctx, SearchParams{Limit: 4, Offset: 4, SortBy: SortName, SortOrder: "asc"})
	require.NoError(t, err)

	assert.Equal(t, uint64(6), first.Total)
	assert.Len(t, first.Hits, 4)
	assert.Len(t, second.Hits, 2)
	assert.NotContains(t, hitIDs(first), second.Hits[0].ID)
}

func TestSearchIndex_Search_SortByStrength(t *testing.T) {
	index := seededIndex(t)

	result, err := index.Search(context.Background(), SearchParams{
		Kinds:     []domain.Kind{domain.KindWebbing, domain.KindWeblock},
		Limit:     10,
		SortBy:    SortStrength,
		SortOrder: "desc",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"webbing:2", "webbing:1", "weblock:1"}, hitIDs(result))
}

func TestSearchIndex_Search_Facets(t *testing.T) {
	index := seededIndex(t)

	result, err := index.Search(context.Background(), SearchParams{Limit: 10, IncludeFacets: true})
	require.NoError(t, err)

	types := map[string]int{}
	for _, f := range result.Facets.Types {
		types[f.Value] = f.Count
	}
	assert.Equal(t, map[string]int{"brand": 2, "webbing": 2, "weblock": 1, "roller": 1}, types)

	brands := map[string]int{}
	for _, f := range result.Facets.Brands {
		brands[f.Value] = f.Count
	}
	assert.Equal(t, 3, brands["Edelrid"])
	assert.Equal(t, 3, brands["Balance Community"])

	materials := map[string]int{}
	for _, f := range result.Facets.Materials {
		materials[f.Value] = f.Count
	}
	assert.Equal(t, 1, materials["Stainless Steel"])
}

func TestSearchIndex_Persistence(t *testing.T) {
	dir := t.TempDir()

	index1, err := NewSearchIndex(Options{DataPath: dir, Logger: logger.Discard()})
	require.NoError(t, err)
	require.NoError(t, index1.Put(&SearchDocument{ID: "brand:1", Type: domain.KindBrand, Name: "Edelrid"}))
	require.NoError(t, index1.Close())

	index2, err := NewSearchIndex(Options{DataPath: dir, Logger: logger.Discard()})
	require.NoError(t, err)
	defer index2.Close()

	count, err := index2.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	result, err := index2.Search(context.Background(), SearchParams{Query: "Edelrid", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}

func TestSearchIndex_StaleMappingVersionRebuilds(t *testing.T) {
	dir := t.TempDir()

	index1, err := NewSearchIndex(Options{DataPath: dir, Logger: logger.Discard()})
	require.NoError(t, err)
	require.NoError(t, index1.Put(&SearchDocument{ID: "brand:1", Type: domain.KindBrand, Name: "Edelrid"}))
	require.NoError(t, index1.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, versionFile), []byte("0"), 0o600))

	index2, err := NewSearchIndex(Options{DataPath: dir, Logger: logger.Discard()})
	require.NoError(t, err)
	defer index2.Close()

	count, err := index2.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	version, err := os.ReadFile(filepath.Join(dir, versionFile))
	require.NoError(t, err)
	assert.Equal(t, mappingVersion, string(version))
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "weblock:12", DocumentID(domain.KindWeblock, 12))

	kind, id, err := ParseDocumentID("roller:7")
	require.NoError(t, err)
	assert.Equal(t, domain.KindRoller, kind)
	assert.Equal(t, int64(7), id)

	_, _, err = ParseDocumentID("roller")
	require.Error(t, err)
	_, _, err = ParseDocumentID("roller:x")
	require.Error(t, err)
}

func TestSearchParams_Defaults(t *testing.T) {
	p := DefaultSearchParams()
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset)
	assert.Equal(t, SortRelevance, p.SortBy)
	assert.True(t, p.IncludeFacets)
}
