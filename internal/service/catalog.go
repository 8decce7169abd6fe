// Package service holds the catalog business logic that sits between the
// HTTP handlers and the store: validation, referential checks, search
// indexing and response enrichment.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/slackdb/slackdb-server/internal/domain"
	domainerrors "github.com/slackdb/slackdb-server/internal/errors"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// Record constrains the pointer form of a catalog entity.
type Record[T any] interface {
	*T
	domain.Entity
}

// Patch merges optional updates into an entity.
type Patch[T any] interface {
	Apply(entity *T)
}

// catalog is the CRUD core shared by brands and gear.
type catalog[T any, PT Record[T]] struct {
	kind      domain.Kind
	store     store.Store
	repo      func(s store.Store) store.Repository[T]
	validator *validation.Validator
	search    *SearchService
	logger    *slog.Logger
}

func (c *catalog[T, PT]) get(ctx context.Context, id int64) (*T, error) {
	e, err := c.repo(c.store).Get(ctx, id)
	if err != nil {
		return nil, c.storeError(err, id)
	}
	return e, nil
}

func (c *catalog[T, PT]) list(ctx context.Context, page store.Page) ([]*T, error) {
	items, err := c.repo(c.store).List(ctx, page.Normalize())
	if err != nil {
		return nil, c.storeError(err, 0)
	}
	return items, nil
}

func (c *catalog[T, PT]) insert(ctx context.Context, e *T) error {
	if err := c.validator.Validate(e); err != nil {
		return err
	}
	if err := c.repo(c.store).Insert(ctx, e); err != nil {
		return c.storeError(err, 0)
	}

	id := PT(e).GetID()
	c.search.Put(ctx, PT(e))
	c.logger.Info("created", "kind", c.kind, "id", id)
	return nil
}

// patch loads the entity, merges p and writes it back. check runs on the
// merged entity before it is validated.
func (c *catalog[T, PT]) patch(ctx context.Context, id int64, p Patch[T], check func(*T) error) (*T, error) {
	if err := c.validator.Validate(p); err != nil {
		return nil, err
	}

	e, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(e)

	if check != nil {
		if err := check(e); err != nil {
			return nil, err
		}
	}
	if err := c.validator.Validate(e); err != nil {
		return nil, err
	}
	if err := c.repo(c.store).Update(ctx, e); err != nil {
		return nil, c.storeError(err, id)
	}

	c.search.Put(ctx, PT(e))
	c.logger.Info("updated", "kind", c.kind, "id", id)
	return e, nil
}

func (c *catalog[T, PT]) remove(ctx context.Context, id int64) error {
	if err := c.repo(c.store).Delete(ctx, id); err != nil {
		return c.storeError(err, id)
	}
	c.search.Remove(c.kind, id)
	c.logger.Info("deleted", "kind", c.kind, "id", id)
	return nil
}

func (c *catalog[T, PT]) count(ctx context.Context) (int, error) {
	return c.repo(c.store).Count(ctx)
}

// storeError maps persistence errors onto coded domain errors.
func (c *catalog[T, PT]) storeError(err error, id int64) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFoundf("%s %d not found", c.kind.Title(), id).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.Wrapf(err, domainerrors.CodeAlreadyExists, "%s already exists", c.kind.Title())
	case errors.Is(err, store.ErrConflict):
		return domainerrors.Wrapf(err, domainerrors.CodeConflict, "%s %d is still referenced", c.kind.Title(), id)
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Wrapf(err, domainerrors.CodeValidation, "invalid %s", c.kind)
	default:
		return err
	}
}
