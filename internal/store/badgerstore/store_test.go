package badgerstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newTestStore(t) })
}

func TestIDsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir, nil)
	require.NoError(t, err)
	first := domain.NewBrand("First")
	require.NoError(t, s.Brands().Insert(ctx, first))
	require.NoError(t, s.Close())

	s, err = Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	second := domain.NewBrand("Second")
	require.NoError(t, s.Brands().Insert(ctx, second))
	assert.Greater(t, second.ID, first.ID, "ids are never reused")

	got, err := s.Brands().Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Name)
}

func TestIDsArePerKind(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	b := domain.NewBrand("Edelrid")
	require.NoError(t, s.Brands().Insert(ctx, b))

	w := &domain.Weblock{}
	w.Name = "Slackline Lock"
	w.BrandID = b.ID
	w.Material = domain.MetalStainlessSteel
	require.NoError(t, s.Weblocks().Insert(ctx, w))

	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, int64(1), w.ID)
}

func TestPingAfterClose(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "brand:id:00000000000000000042", string(dataKey(domain.KindBrand, 42)))
	assert.Equal(t, "webbing:idx:brand:00000000000000000003:", string(brandRefPrefix(domain.KindWebbing, 3)))
}
