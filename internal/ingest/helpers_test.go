package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/store/sqlite"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// countingStore counts transactions opened against the wrapped store.
type countingStore struct {
	store.Store
	txs int
}

func (c *countingStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	c.txs++
	return c.Store.InTx(ctx, fn)
}

// countingBrands counts lookups and inserts on a brand repository.
type countingBrands struct {
	store.BrandRepository
	finds, inserts int
}

func (c *countingBrands) FindByName(ctx context.Context, name string) (*domain.Brand, error) {
	c.finds++
	return c.BrandRepository.FindByName(ctx, name)
}

func (c *countingBrands) Insert(ctx context.Context, b *domain.Brand) error {
	c.inserts++
	return c.BrandRepository.Insert(ctx, b)
}

func openStore(t *testing.T) *countingStore {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return &countingStore{Store: s}
}

// writeSource writes body into dir/name and returns the path.
func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// sourcesIn maps every kind to <dir>/<kind>s.json.
func sourcesIn(dir string) SourceFunc {
	return func(kind string) string {
		return filepath.Join(dir, kind+"s.json")
	}
}

func newPipeline(s store.Store, dir string) *Pipeline {
	return NewPipeline(s, sourcesIn(dir), validation.New(), nil, logger.Discard())
}
