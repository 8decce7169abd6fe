// Package store defines the persistence interface for the catalog.
//
// Two backends implement it: store/sqlite (default) and store/badgerstore.
package store

import (
	"context"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// Repository is the generic CRUD surface shared by every entity kind.
type Repository[T any] interface {
	// Get returns ErrNotFound when no row has the given id.
	Get(ctx context.Context, id int64) (*T, error)
	// List returns entities ordered by id within the page window.
	List(ctx context.Context, page Page) ([]*T, error)
	// Insert persists a new entity and assigns its id.
	Insert(ctx context.Context, entity *T) error
	// Update replaces the stored row; ErrNotFound if it does not exist.
	Update(ctx context.Context, entity *T) error
	// Delete removes the row; ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// BrandRepository adds name lookup to brand persistence.
type BrandRepository interface {
	Repository[domain.Brand]
	// FindByName matches case-sensitively. ErrNotFound when absent.
	FindByName(ctx context.Context, name string) (*domain.Brand, error)
}

// GearRepository adds brand back-references to gear persistence.
type GearRepository[T any] interface {
	Repository[T]
	// NamesByBrand returns the names of all gear referencing brandID, ordered by id.
	NamesByBrand(ctx context.Context, brandID int64) ([]string, error)
}

// Store groups the repositories behind one connection.
type Store interface {
	Brands() BrandRepository
	Webbings() GearRepository[domain.Webbing]
	Weblocks() GearRepository[domain.Weblock]
	Rollers() GearRepository[domain.Roller]

	// InTx runs fn against a store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	// Calling InTx on a transaction-bound store reuses the open transaction.
	InTx(ctx context.Context, fn func(tx Store) error) error

	Ping(ctx context.Context) error
	Close() error
}
