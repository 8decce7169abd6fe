package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

var brandTable = newTable("brands",
	[]string{"name", "country", "year_founded", "active", "slackline_focused", "website", "socials", "description", "notes"},
	func(b *domain.Brand) []any {
		return []any{
			b.Name,
			nullableString(b.Country),
			nullableInt(b.YearFounded),
			b.Active,
			b.SlacklineFocused,
			nullableString(b.Website),
			nullableString(b.Socials),
			nullableString(b.Description),
			nullableString(b.Notes),
		}
	},
	scanBrand,
)

func scanBrand(sc scanner) (*domain.Brand, error) {
	var (
		b                                            domain.Brand
		country, website, socials, description, note sql.NullString
		yearFounded                                  sql.NullInt64
	)

	err := sc.Scan(
		&b.ID,
		&b.Name,
		&country,
		&yearFounded,
		&b.Active,
		&b.SlacklineFocused,
		&website,
		&socials,
		&description,
		&note,
	)
	if err != nil {
		return nil, err
	}

	b.Country = stringPtr(country)
	b.YearFounded = intPtr(yearFounded)
	b.Website = stringPtr(website)
	b.Socials = stringPtr(socials)
	b.Description = stringPtr(description)
	b.Notes = stringPtr(note)
	return &b, nil
}

type brandRepo struct {
	*repo[domain.Brand, *domain.Brand]
}

// FindByName returns store.ErrNotFound if no brand has exactly this name.
func (r *brandRepo) FindByName(ctx context.Context, name string) (*domain.Brand, error) {
	row := r.q.QueryRowContext(ctx, r.t.selectSQL+" WHERE name = ?", name)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find brand %q: %w", name, err)
	}
	return b, nil
}
