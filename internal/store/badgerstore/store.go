// Package badgerstore implements store.Store on an embedded Badger key-value database.
//
// Key layout:
//
//	<kind>:id:<00000000000000000042>          JSON-encoded entity
//	<kind>:idx:<index>:<key>                  secondary index entry
//	seq:<kind>                                id sequence
//
// Ids are zero-padded so prefix iteration yields id order.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

// seqBandwidth is how many ids a sequence leases per disk write.
const seqBandwidth = 100

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	txn    *badger.Txn // non-nil inside InTx
	seqs   *sequences
	logger *slog.Logger
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) a Badger database in dir.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Survive crashes without corrupting the catalog
	opts.CompactL0OnClose = true // Faster startup after a clean shutdown

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened", "path", dir)
	}

	return &Store{
		db:     db,
		seqs:   &sequences{db: db, m: make(map[domain.Kind]*badger.Sequence)},
		logger: logger,
	}, nil
}

// Brands implements store.Store.
func (s *Store) Brands() store.BrandRepository {
	return &brandRepo{collection: s.brandCollection()}
}

// Webbings implements store.Store.
func (s *Store) Webbings() store.GearRepository[domain.Webbing] {
	return &gearRepo[domain.Webbing, *domain.Webbing]{collection: newGearCollection[domain.Webbing](s, domain.KindWebbing)}
}

// Weblocks implements store.Store.
func (s *Store) Weblocks() store.GearRepository[domain.Weblock] {
	return &gearRepo[domain.Weblock, *domain.Weblock]{collection: newGearCollection[domain.Weblock](s, domain.KindWeblock)}
}

// Rollers implements store.Store.
func (s *Store) Rollers() store.GearRepository[domain.Roller] {
	return &gearRepo[domain.Roller, *domain.Roller]{collection: newGearCollection[domain.Roller](s, domain.KindRoller)}
}

// InTx implements store.Store. Ids drawn inside a rolled back transaction are not reused.
func (s *Store) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.txn != nil {
		return fn(s)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(&Store{db: s.db, txn: txn, seqs: s.seqs, logger: s.logger})
	})
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

// Close releases leased ids and closes the database.
// Closing a transaction-bound store is a no-op.
func (s *Store) Close() error {
	if s.txn != nil {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return errors.Join(s.seqs.release(), s.db.Close())
}

func (s *Store) update(fn func(txn *badger.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	return s.db.Update(fn)
}

func (s *Store) view(fn func(txn *badger.Txn) error) error {
	if s.txn != nil {
		return fn(s.txn)
	}
	return s.db.View(fn)
}

// sequences hands out per-kind ids.
type sequences struct {
	mu sync.Mutex
	db *badger.DB
	m  map[domain.Kind]*badger.Sequence
}

// next returns the next id for kind, starting at 1.
func (q *sequences) next(kind domain.Kind) (int64, error) {
	q.mu.Lock()
	seq, ok := q.m[kind]
	if !ok {
		var err error
		seq, err = q.db.GetSequence([]byte("seq:"+string(kind)), seqBandwidth)
		if err != nil {
			q.mu.Unlock()
			return 0, fmt.Errorf("get sequence %s: %w", kind, err)
		}
		q.m[kind] = seq
	}
	q.mu.Unlock()

	n, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next id %s: %w", kind, err)
	}
	return int64(n) + 1, nil //nolint:gosec // ids stay far below MaxInt64
}

func (q *sequences) release() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	var errs []error
	for _, seq := range q.m {
		errs = append(errs, seq.Release())
	}
	return errors.Join(errs...)
}
