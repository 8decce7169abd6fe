// Package storetest holds a conformance suite every store.Store backend must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

// Opener returns a fresh, empty store. The suite closes it.
type Opener func(t *testing.T) store.Store

// Run exercises the store contract against a backend.
func Run(t *testing.T, open Opener) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"BrandCRUD", testBrandCRUD},
		{"MissingIDs", testMissingIDs},
		{"UniqueBrandName", testUniqueBrandName},
		{"FindByNameCaseSensitive", testFindByNameCaseSensitive},
		{"ListOrderAndWindow", testListOrderAndWindow},
		{"GearReferences", testGearReferences},
		{"TxCommit", testTxCommit},
		{"TxRollback", testTxRollback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func newWebbing(name string, brandID int64) *domain.Webbing {
	w := &domain.Webbing{}
	w.Name = name
	w.BrandID = brandID
	w.Width = 25
	w.Material = domain.FiberPolyester
	return w
}

func testBrandCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	b := domain.NewBrand("Balance Community")
	require.NoError(t, s.Brands().Insert(ctx, b))
	require.Positive(t, b.ID)

	got, err := s.Brands().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	country := "Germany"
	got.Country = &country
	require.NoError(t, s.Brands().Update(ctx, got))

	again, err := s.Brands().Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, again.Country)
	assert.Equal(t, "Germany", *again.Country)

	require.NoError(t, s.Brands().Delete(ctx, b.ID))
	_, err = s.Brands().Get(ctx, b.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testMissingIDs(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Rollers().Get(ctx, 7)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Weblocks().Delete(ctx, 7), store.ErrNotFound)

	ghost := domain.NewBrand("Ghost")
	ghost.ID = 7
	assert.ErrorIs(t, s.Brands().Update(ctx, ghost), store.ErrNotFound)
}

func testUniqueBrandName(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.Brands().Insert(ctx, domain.NewBrand("Petzl")))
	assert.ErrorIs(t, s.Brands().Insert(ctx, domain.NewBrand("Petzl")), store.ErrAlreadyExists)

	n, err := s.Brands().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Renaming onto an existing name is rejected; keeping one's own name is not.
	other := domain.NewBrand("Edelrid")
	require.NoError(t, s.Brands().Insert(ctx, other))
	require.NoError(t, s.Brands().Update(ctx, other))
	other.Name = "Petzl"
	assert.ErrorIs(t, s.Brands().Update(ctx, other), store.ErrAlreadyExists)
}

func testFindByNameCaseSensitive(t *testing.T, s store.Store) {
	ctx := context.Background()

	b := domain.NewBrand("Gibbon")
	require.NoError(t, s.Brands().Insert(ctx, b))

	got, err := s.Brands().FindByName(ctx, "Gibbon")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = s.Brands().FindByName(ctx, "gibbon")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testListOrderAndWindow(t *testing.T, s store.Store) {
	ctx := context.Background()

	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for _, n := range names {
		require.NoError(t, s.Brands().Insert(ctx, domain.NewBrand(n)))
	}

	first, err := s.Brands().List(ctx, store.Page{})
	require.NoError(t, err)
	require.Len(t, first, store.DefaultLimit)
	assert.Equal(t, "A", first[0].Name)

	window, err := s.Brands().List(ctx, store.Page{Offset: 10, Limit: 5})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "K", window[0].Name)
	assert.Equal(t, "L", window[1].Name)

	past, err := s.Brands().List(ctx, store.Page{Offset: 50, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func testGearReferences(t *testing.T, s store.Store) {
	ctx := context.Background()

	assert.ErrorIs(t, s.Webbings().Insert(ctx, newWebbing("Orphan", 99)), store.ErrInvalidInput)

	brand := domain.NewBrand("Landcruising")
	require.NoError(t, s.Brands().Insert(ctx, brand))

	first := newWebbing("Mantra", brand.ID)
	require.NoError(t, s.Webbings().Insert(ctx, first))
	require.NoError(t, s.Webbings().Insert(ctx, newWebbing("Sonic", brand.ID)))

	names, err := s.Webbings().NamesByBrand(ctx, brand.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mantra", "Sonic"}, names)

	assert.ErrorIs(t, s.Brands().Delete(ctx, brand.ID), store.ErrConflict)

	// Moving gear to another brand moves the back-reference.
	other := domain.NewBrand("Elephant")
	require.NoError(t, s.Brands().Insert(ctx, other))
	first.BrandID = other.ID
	require.NoError(t, s.Webbings().Update(ctx, first))

	names, err = s.Webbings().NamesByBrand(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mantra"}, names)
}

func testTxCommit(t *testing.T, s store.Store) {
	ctx := context.Background()

	err := s.InTx(ctx, func(tx store.Store) error {
		b := domain.NewBrand("Slacktivity")
		if err := tx.Brands().Insert(ctx, b); err != nil {
			return err
		}
		// Reads inside the transaction see its own writes.
		if _, err := tx.Brands().FindByName(ctx, "Slacktivity"); err != nil {
			return err
		}
		return tx.Webbings().Insert(ctx, newWebbing("Tubular", b.ID))
	})
	require.NoError(t, err)

	n, err := s.Webbings().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx store.Store) error {
		if err := tx.Brands().Insert(ctx, domain.NewBrand("Doomed")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Brands().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
