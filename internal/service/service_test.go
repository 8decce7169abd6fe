package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackdb/slackdb-server/internal/domain"
	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/search"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/store/sqlite"
	"github.com/slackdb/slackdb-server/internal/validation"
)

type testServices struct {
	store    store.Store
	search   *SearchService
	brands   *BrandService
	webbings *WebbingService
	weblocks *WeblockService
	rollers  *RollerService
}

func setupServices(t *testing.T, withSearch bool) *testServices {
	t.Helper()
	dir := t.TempDir()
	log := logger.Discard()

	st, err := sqlite.Open(filepath.Join(dir, "catalog.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	var catalog *search.Catalog
	if withSearch {
		index, err := search.NewSearchIndex(search.Options{DataPath: filepath.Join(dir, "search"), Logger: log})
		require.NoError(t, err)
		t.Cleanup(func() { _ = index.Close() })
		catalog = search.NewCatalog(index, st, log)
	}

	v := validation.New()
	searchSvc := NewSearchService(catalog, log)
	return &testServices{
		store:    st,
		search:   searchSvc,
		brands:   NewBrandService(st, v, searchSvc, log),
		webbings: NewWebbingService(st, v, searchSvc, log),
		weblocks: NewWeblockService(st, v, searchSvc, log),
		rollers:  NewRollerService(st, v, searchSvc, log),
	}
}

func (ts *testServices) brand(t *testing.T, name string) *domain.Brand {
	t.Helper()
	b, err := ts.brands.Create(context.Background(), domain.NewBrand(name))
	require.NoError(t, err)
	return b
}

func newWebbing(name string, brandID int64) *domain.Webbing {
	w := &domain.Webbing{}
	w.Name = name
	w.BrandID = brandID
	w.Width = 25
	w.Material = domain.FiberPolyester
	return w
}

func newWeblock(name string, brandID int64) *domain.Weblock {
	w := &domain.Weblock{}
	w.Name = name
	w.BrandID = brandID
	w.Width = 35
	w.Material = domain.MetalAluminum
	return w
}

func requireCode(t *testing.T, err error, code domainerrors.Code) *domainerrors.Error {
	t.Helper()
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
	return domainErr
}

func TestBrandService_CRUD(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	b := ts.brand(t, "Balance Community")
	assert.Positive(t, b.ID)
	assert.True(t, b.Active)

	country := "Germany"
	updated, err := ts.brands.Update(ctx, b.ID, domain.BrandPatch{Country: &country})
	require.NoError(t, err)
	assert.Equal(t, "Balance Community", updated.Name, "absent fields are left untouched")
	require.NotNil(t, updated.Country)
	assert.Equal(t, "Germany", *updated.Country)

	list, err := ts.brands.List(ctx, store.DefaultPage())
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, ts.brands.Delete(ctx, b.ID))

	_, err = ts.brands.Get(ctx, b.ID)
	domainErr := requireCode(t, err, domainerrors.CodeNotFound)
	assert.Equal(t, "Brand 1 not found", domainErr.Message)
}

func TestBrandService_DuplicateName(t *testing.T) {
	ts := setupServices(t, false)

	ts.brand(t, "Edelrid")
	_, err := ts.brands.Create(context.Background(), domain.NewBrand("Edelrid"))

	domainErr := requireCode(t, err, domainerrors.CodeAlreadyExists)
	assert.Contains(t, domainErr.Message, "Edelrid")
}

func TestBrandService_ValidationFailure(t *testing.T) {
	ts := setupServices(t, false)

	_, err := ts.brands.Create(context.Background(), domain.NewBrand(""))
	requireCode(t, err, domainerrors.CodeValidation)

	count, err := ts.brands.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBrandService_GetIncludesGearNames(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	b := ts.brand(t, "Edelrid")
	_, err := ts.weblocks.Create(ctx, newWeblock("Slackline Lock", b.ID))
	require.NoError(t, err)
	_, err = ts.webbings.Create(ctx, newWebbing("Mantra", b.ID))
	require.NoError(t, err)

	detail, err := ts.brands.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mantra"}, detail.WebbingNames)
	assert.Equal(t, []string{"Slackline Lock"}, detail.WeblockNames)
	assert.Equal(t, []string{}, detail.RollerNames)
	assert.Equal(t, 2, detail.References())
}

func TestBrandService_DeleteReferencedBrand(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	b := ts.brand(t, "Edelrid")
	_, err := ts.weblocks.Create(ctx, newWeblock("Slackline Lock", b.ID))
	require.NoError(t, err)

	err = ts.brands.Delete(ctx, b.ID)
	domainErr := requireCode(t, err, domainerrors.CodeConflict)
	details, ok := domainErr.Details.(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"Slackline Lock"}, details["weblock_names"])

	_, err = ts.brands.Get(ctx, b.ID)
	assert.NoError(t, err, "brand survives a refused delete")
}

func TestGearService_CreateAndGet(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	b := ts.brand(t, "Balance Community")
	created, err := ts.webbings.Create(ctx, newWebbing("Mantra", b.ID))
	require.NoError(t, err)
	assert.Positive(t, created.Entity.ID)
	assert.Equal(t, "Balance Community", created.BrandName)

	got, err := ts.webbings.Get(ctx, created.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mantra", got.Entity.Name)
	assert.Equal(t, "Balance Community", got.BrandName)
}

func TestGearService_CreateRejects(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()
	b := ts.brand(t, "Edelrid")

	tests := []struct {
		name   string
		lock   *domain.Weblock
		detail string
	}{
		{"unknown brand", newWeblock("Lock", 99), "brand_id"},
		{"no brand", newWeblock("Lock", 0), "brand_id"},
		{"missing name", newWeblock("", b.ID), "name"},
		{"bad material", func() *domain.Weblock {
			w := newWeblock("Lock", b.ID)
			w.Material = "Bronze"
			return w
		}(), "material"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.weblocks.Create(ctx, tt.lock)
			domainErr := requireCode(t, err, domainerrors.CodeValidation)
			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.detail)
		})
	}

	count, err := ts.weblocks.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGearService_ListCarriesBrandNames(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	a := ts.brand(t, "Balance Community")
	b := ts.brand(t, "Landcruising")
	for _, w := range []*domain.Webbing{newWebbing("Mantra", a.ID), newWebbing("Sonic", a.ID), newWebbing("Moon", b.ID)} {
		_, err := ts.webbings.Create(ctx, w)
		require.NoError(t, err)
	}

	page, err := ts.webbings.List(ctx, store.Page{Offset: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Sonic", page[0].Entity.Name)
	assert.Equal(t, "Balance Community", page[0].BrandName)
	assert.Equal(t, "Moon", page[1].Entity.Name)
	assert.Equal(t, "Landcruising", page[1].BrandName)
}

func TestGearService_Update(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	a := ts.brand(t, "Balance Community")
	b := ts.brand(t, "Landcruising")
	created, err := ts.webbings.Create(ctx, newWebbing("Mantra", a.ID))
	require.NoError(t, err)
	id := created.Entity.ID

	width := 35
	updated, err := ts.webbings.Update(ctx, id, domain.WebbingPatch{GearPatch: domain.GearPatch{Width: &width, BrandID: &b.ID}})
	require.NoError(t, err)
	assert.Equal(t, 35, updated.Entity.Width)
	assert.Equal(t, "Mantra", updated.Entity.Name)
	assert.Equal(t, "Landcruising", updated.BrandName)

	missing := int64(404)
	_, err = ts.webbings.Update(ctx, id, domain.WebbingPatch{GearPatch: domain.GearPatch{BrandID: &missing}})
	requireCode(t, err, domainerrors.CodeValidation)

	negative := -1
	_, err = ts.webbings.Update(ctx, id, domain.WebbingPatch{GearPatch: domain.GearPatch{Width: &negative}})
	requireCode(t, err, domainerrors.CodeValidation)

	_, err = ts.webbings.Update(ctx, 999, domain.WebbingPatch{GearPatch: domain.GearPatch{Width: &width}})
	domainErr := requireCode(t, err, domainerrors.CodeNotFound)
	assert.Equal(t, "Webbing 999 not found", domainErr.Message)

	got, err := ts.webbings.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 35, got.Entity.Width, "rejected patches leave the row unchanged")
}

func TestGearService_Delete(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	b := ts.brand(t, "Edelrid")
	created, err := ts.weblocks.Create(ctx, newWeblock("Slackline Lock", b.ID))
	require.NoError(t, err)

	require.NoError(t, ts.weblocks.Delete(ctx, created.Entity.ID))

	err = ts.weblocks.Delete(ctx, created.Entity.ID)
	domainErr := requireCode(t, err, domainerrors.CodeNotFound)
	assert.Equal(t, "Weblock 1 not found", domainErr.Message)

	require.NoError(t, ts.brands.Delete(ctx, b.ID), "brand is free once its gear is gone")
}

func TestServices_KeepSearchIndexInStep(t *testing.T) {
	ts := setupServices(t, true)
	ctx := context.Background()

	b := ts.brand(t, "Edelrid")
	created, err := ts.weblocks.Create(ctx, newWeblock("Slackline Lock", b.ID))
	require.NoError(t, err)

	result, err := ts.search.Search(ctx, search.SearchParams{Query: "slackline", Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Edelrid", result.Hits[0].BrandName)

	name := "Edelrid Sports"
	_, err = ts.brands.Update(ctx, b.ID, domain.BrandPatch{Name: &name})
	require.NoError(t, err)

	result, err = ts.search.Search(ctx, search.SearchParams{Query: "slackline", Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "Edelrid Sports", result.Hits[0].BrandName)

	require.NoError(t, ts.weblocks.Delete(ctx, created.Entity.ID))
	result, err = ts.search.Search(ctx, search.SearchParams{Query: "slackline", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, result.Hits)

	count, err := ts.search.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count, "only the brand remains")
}

func TestSearchService_Disabled(t *testing.T) {
	ts := setupServices(t, false)
	ctx := context.Background()

	assert.False(t, ts.search.Enabled())
	_, err := ts.search.Search(ctx, search.DefaultSearchParams())
	assert.ErrorIs(t, err, ErrSearchDisabled)
	assert.NoError(t, ts.search.Reindex(ctx))

	var nilSvc *SearchService
	assert.False(t, nilSvc.Enabled())
	nilSvc.Put(ctx, domain.NewBrand("x"))
	nilSvc.Remove(domain.KindBrand, 1)
}

func TestStats(t *testing.T) {
	ts := setupServices(t, true)
	ctx := context.Background()

	b := ts.brand(t, "Edelrid")
	_, err := ts.weblocks.Create(ctx, newWeblock("Slackline Lock", b.ID))
	require.NoError(t, err)
	_, err = ts.weblocks.Create(ctx, newWeblock("Rock Lock", b.ID))
	require.NoError(t, err)

	stats, err := ts.search.Stats(ctx, ts.store)
	require.NoError(t, err)

	assert.Equal(t, []KindCount{
		{Kind: domain.KindBrand, Count: 1},
		{Kind: domain.KindWebbing, Count: 0},
		{Kind: domain.KindWeblock, Count: 2},
		{Kind: domain.KindRoller, Count: 0},
	}, stats.Kinds)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, uint64(3), stats.IndexedEntries)
}
