package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

type scanner interface{ Scan(dest ...any) error }

// entityPtr lets generic code call domain.Entity methods on *T.
type entityPtr[T any] interface {
	*T
	domain.Entity
}

// table describes how one entity kind maps onto its SQL table.
// values and scan must follow the order of columns; scan also reads a leading id.
type table[T any] struct {
	name    string
	columns []string
	values  func(*T) []any
	scan    func(scanner) (*T, error)

	selectSQL string
	insertSQL string
	updateSQL string
}

func newTable[T any](name string, columns []string, values func(*T) []any, scan func(scanner) (*T, error)) *table[T] {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = c + " = ?"
	}

	return &table[T]{
		name:      name,
		columns:   columns,
		values:    values,
		scan:      scan,
		selectSQL: "SELECT id, " + strings.Join(columns, ", ") + " FROM " + name,
		insertSQL: "INSERT INTO " + name + " (" + strings.Join(columns, ", ") + ") VALUES (" + placeholders + ")",
		updateSQL: "UPDATE " + name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?",
	}
}

// repo implements store.Repository for any table.
type repo[T any, PT entityPtr[T]] struct {
	q querier
	t *table[T]
}

func newRepo[T any, PT entityPtr[T]](q querier, t *table[T]) *repo[T, PT] {
	return &repo[T, PT]{q: q, t: t}
}

// Get returns store.ErrNotFound if the row does not exist.
func (r *repo[T, PT]) Get(ctx context.Context, id int64) (*T, error) {
	row := r.q.QueryRowContext(ctx, r.t.selectSQL+" WHERE id = ?", id)
	e, err := r.t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.t.name, id, err)
	}
	return e, nil
}

func (r *repo[T, PT]) List(ctx context.Context, page store.Page) ([]*T, error) {
	page = page.Normalize()
	return r.query(ctx, r.t.selectSQL+" ORDER BY id LIMIT ? OFFSET ?", page.Limit, page.Offset)
}

func (r *repo[T, PT]) query(ctx context.Context, query string, args ...any) ([]*T, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.name, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		e, err := r.t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.name, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Insert assigns the generated id to entity.
func (r *repo[T, PT]) Insert(ctx context.Context, entity *T) error {
	res, err := r.q.ExecContext(ctx, r.t.insertSQL, r.t.values(entity)...)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert %s: %w", r.t.name, err)
	}
	PT(entity).SetID(id)
	return nil
}

func (r *repo[T, PT]) Update(ctx context.Context, entity *T) error {
	args := append(r.t.values(entity), PT(entity).GetID())
	res, err := r.q.ExecContext(ctx, r.t.updateSQL, args...)
	if err != nil {
		return mapWriteErr(err)
	}
	return requireAffected(res)
}

func (r *repo[T, PT]) Delete(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM "+r.t.name+" WHERE id = ?", id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrConflict.WithCause(err)
		}
		return err
	}
	return requireAffected(res)
}

func (r *repo[T, PT]) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.t.name).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.t.name, err)
	}
	return n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// mapWriteErr translates SQLite constraint failures into store errors.
func mapWriteErr(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return store.ErrAlreadyExists.WithCause(err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return store.ErrInvalidInput.WithMessage("referenced brand does not exist").WithCause(err)
	default:
		return err
	}
}
