package badgerstore

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

func (s *Store) brandCollection() *collection[domain.Brand, *domain.Brand] {
	return &collection[domain.Brand, *domain.Brand]{
		s:    s,
		kind: domain.KindBrand,
		indexes: []index[domain.Brand]{{
			name:   "name",
			unique: true,
			keys:   func(b *domain.Brand) []string { return []string{b.Name} },
		}},
		beforeDelete: func(txn *badger.Txn, b *domain.Brand) error {
			for _, kind := range domain.GearKinds {
				ids, err := scanIndex(txn, brandRefPrefix(kind, b.ID))
				if err != nil {
					return err
				}
				if len(ids) > 0 {
					return store.ErrConflict
				}
			}
			return nil
		},
	}
}

// brandRefPrefix covers every <kind> gear entry referencing brandID.
func brandRefPrefix(kind domain.Kind, brandID int64) []byte {
	return indexKey(kind, "brand", pad(brandID)+":")
}

type gearPtr[T any] interface {
	*T
	domain.Gear
}

func newGearCollection[T any, PT gearPtr[T]](s *Store, kind domain.Kind) *collection[T, PT] {
	return &collection[T, PT]{
		s:    s,
		kind: kind,
		indexes: []index[T]{{
			name: "brand",
			keys: func(e *T) []string {
				return []string{pad(PT(e).BrandRef()) + ":" + pad(PT(e).GetID())}
			},
		}},
		beforeWrite: func(txn *badger.Txn, e *T) error {
			_, err := txn.Get(dataKey(domain.KindBrand, PT(e).BrandRef()))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrInvalidInput.WithMessage("referenced brand does not exist")
			}
			return err
		},
	}
}

type brandRepo struct {
	*collection[domain.Brand, *domain.Brand]
}

func (r *brandRepo) FindByName(ctx context.Context, name string) (*domain.Brand, error) {
	return r.lookup(ctx, "name", name)
}

type gearRepo[T any, PT gearPtr[T]] struct {
	*collection[T, PT]
}

func (r *gearRepo[T, PT]) NamesByBrand(ctx context.Context, brandID int64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := []string{}
	err := r.s.view(func(txn *badger.Txn) error {
		ids, err := scanIndex(txn, brandRefPrefix(r.kind, brandID))
		if err != nil {
			return err
		}
		for _, id := range ids {
			e, err := r.get(txn, id)
			if err != nil {
				return err
			}
			names = append(names, PT(e).DisplayName())
		}
		return nil
	})
	return names, err
}
