package badgerstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

type entityPtr[T any] interface {
	*T
	domain.Entity
}

// index is a secondary index on a collection. Unique indexes map key to id;
// non-unique ones must embed the id in the key and store no value.
type index[T any] struct {
	name   string
	unique bool
	keys   func(*T) []string
}

// collection provides generic CRUD for one entity kind.
type collection[T any, PT entityPtr[T]] struct {
	s       *Store
	kind    domain.Kind
	indexes []index[T]

	// Optional referential checks run inside the write transaction.
	beforeWrite  func(txn *badger.Txn, e *T) error
	beforeDelete func(txn *badger.Txn, e *T) error
}

func pad(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func dataPrefix(kind domain.Kind) []byte {
	return []byte(string(kind) + ":id:")
}

func dataKey(kind domain.Kind, id int64) []byte {
	return []byte(string(kind) + ":id:" + pad(id))
}

func indexKey(kind domain.Kind, name, key string) []byte {
	return []byte(string(kind) + ":idx:" + name + ":" + key)
}

func (c *collection[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var e *T
	err := c.s.view(func(txn *badger.Txn) error {
		var err error
		e, err = c.get(txn, id)
		return err
	})
	return e, err
}

func (c *collection[T, PT]) get(txn *badger.Txn, id int64) (*T, error) {
	item, err := txn.Get(dataKey(c.kind, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", c.kind, id, err)
	}
	var e T
	if err := item.Value(func(val []byte) error { return json.Unmarshal(val, &e) }); err != nil {
		return nil, fmt.Errorf("decode %s %d: %w", c.kind, id, err)
	}
	return &e, nil
}

// List walks the id-ordered data keys, skipping page.Offset entries.
func (c *collection[T, PT]) List(ctx context.Context, page store.Page) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page = page.Normalize()

	var out []*T
	err := c.s.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = dataPrefix(c.kind)
		it := txn.NewIterator(opts)
		defer it.Close()

		skipped := 0
		for it.Rewind(); it.Valid() && len(out) < page.Limit; it.Next() {
			if skipped < page.Offset {
				skipped++
				continue
			}
			var e T
			if err := it.Item().Value(func(val []byte) error { return json.Unmarshal(val, &e) }); err != nil {
				return fmt.Errorf("decode %s: %w", c.kind, err)
			}
			out = append(out, &e)
		}
		return nil
	})
	return out, err
}

func (c *collection[T, PT]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	err := c.s.view(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = dataPrefix(c.kind)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Insert draws a fresh id from the kind's sequence.
func (c *collection[T, PT]) Insert(ctx context.Context, e *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := c.s.seqs.next(c.kind)
	if err != nil {
		return err
	}
	PT(e).SetID(id)

	return c.s.update(func(txn *badger.Txn) error {
		return c.write(txn, nil, e)
	})
}

func (c *collection[T, PT]) Update(ctx context.Context, e *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.s.update(func(txn *badger.Txn) error {
		old, err := c.get(txn, PT(e).GetID())
		if err != nil {
			return err
		}
		return c.write(txn, old, e)
	})
}

// write stores e and moves its index entries from old (nil on insert).
func (c *collection[T, PT]) write(txn *badger.Txn, old, e *T) error {
	if c.beforeWrite != nil {
		if err := c.beforeWrite(txn, e); err != nil {
			return err
		}
	}

	id := PT(e).GetID()
	for _, idx := range c.indexes {
		oldKeys := map[string]bool{}
		if old != nil {
			for _, k := range idx.keys(old) {
				oldKeys[k] = true
				if err := txn.Delete(indexKey(c.kind, idx.name, k)); err != nil {
					return fmt.Errorf("delete index %s: %w", idx.name, err)
				}
			}
		}
		for _, k := range idx.keys(e) {
			key := indexKey(c.kind, idx.name, k)
			if idx.unique && !oldKeys[k] {
				_, err := txn.Get(key)
				if err == nil {
					return store.ErrAlreadyExists.WithMessage(fmt.Sprintf("%s %s %q already exists", c.kind, idx.name, k))
				}
				if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("check index %s: %w", idx.name, err)
				}
			}
			var val []byte
			if idx.unique {
				val = []byte(pad(id))
			}
			if err := txn.Set(key, val); err != nil {
				return fmt.Errorf("set index %s: %w", idx.name, err)
			}
		}
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.kind, err)
	}
	return txn.Set(dataKey(c.kind, id), data)
}

func (c *collection[T, PT]) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.s.update(func(txn *badger.Txn) error {
		e, err := c.get(txn, id)
		if err != nil {
			return err
		}
		if c.beforeDelete != nil {
			if err := c.beforeDelete(txn, e); err != nil {
				return err
			}
		}
		for _, idx := range c.indexes {
			for _, k := range idx.keys(e) {
				if err := txn.Delete(indexKey(c.kind, idx.name, k)); err != nil {
					return fmt.Errorf("delete index %s: %w", idx.name, err)
				}
			}
		}
		return txn.Delete(dataKey(c.kind, id))
	})
}

// lookup resolves a unique index entry to its entity.
func (c *collection[T, PT]) lookup(ctx context.Context, name, key string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var e *T
	err := c.s.view(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(c.kind, name, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		var id int64
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = strconv.ParseInt(string(val), 10, 64)
			return err
		}); err != nil {
			return fmt.Errorf("decode index %s: %w", name, err)
		}
		e, err = c.get(txn, id)
		return err
	})
	return e, err
}

// scanIndex returns the ids under a non-unique index prefix, in key order.
func scanIndex(txn *badger.Txn, prefix []byte) ([]int64, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []int64
	for it.Rewind(); it.Valid(); it.Next() {
		key := it.Item().Key()
		id, err := strconv.ParseInt(string(key[len(prefix):]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode index key %q: %w", key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
