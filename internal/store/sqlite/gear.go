package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// gearColumns are shared by every gear table, in scan order.
var gearColumns = []string{
	"name", "release_date", "width", "weight", "breaking_strength", "isa_certified",
	"isa_warning", "colors", "price", "currency", "description", "version", "notes", "brand_id",
}

func gearValues(g *domain.GearSpec) []any {
	return []any{
		g.Name,
		nullableString(g.ReleaseDate),
		g.Width,
		nullableFloat(g.Weight),
		nullableFloat(g.BreakingStrength),
		g.ISACertified,
		nullableEnum(g.ISAWarning),
		nullableString(g.Colors),
		nullableFloat(g.Price),
		nullableEnum(g.Currency),
		nullableString(g.Description),
		nullableString(g.Version),
		nullableString(g.Notes),
		g.BrandID,
	}
}

// gearRow holds the nullable scan targets of the shared gear columns.
type gearRow struct {
	releaseDate, isaWarning, colors, currency, description, version, notes sql.NullString
	weight, strength, price                                                sql.NullFloat64
}

func (r *gearRow) dest(g *domain.GearSpec) []any {
	return []any{
		&g.Name, &r.releaseDate, &g.Width, &r.weight, &r.strength, &g.ISACertified,
		&r.isaWarning, &r.colors, &r.price, &r.currency, &r.description, &r.version, &r.notes, &g.BrandID,
	}
}

func (r *gearRow) assign(g *domain.GearSpec) {
	g.ReleaseDate = stringPtr(r.releaseDate)
	g.Weight = floatPtr(r.weight)
	g.BreakingStrength = floatPtr(r.strength)
	g.ISAWarning = enumPtr[domain.ISAWarning](r.isaWarning)
	g.Colors = stringPtr(r.colors)
	g.Price = floatPtr(r.price)
	g.Currency = enumPtr[domain.Currency](r.currency)
	g.Description = stringPtr(r.description)
	g.Version = stringPtr(r.version)
	g.Notes = stringPtr(r.notes)
}

func withGear(extra ...string) []string {
	return append(append([]string{}, gearColumns...), extra...)
}

var webbingTable = newTable("webbings",
	withGear("material", "stretch", "classification"),
	func(w *domain.Webbing) []any {
		return append(gearValues(&w.GearSpec),
			string(w.Material),
			nullableString(w.Stretch),
			nullableEnum(w.Classification),
		)
	},
	func(sc scanner) (*domain.Webbing, error) {
		var (
			w                       domain.Webbing
			row                     gearRow
			stretch, classification sql.NullString
		)
		dest := append([]any{&w.ID}, row.dest(&w.GearSpec)...)
		dest = append(dest, &w.Material, &stretch, &classification)
		if err := sc.Scan(dest...); err != nil {
			return nil, err
		}
		row.assign(&w.GearSpec)
		w.Stretch = stringPtr(stretch)
		w.Classification = enumPtr[domain.Classification](classification)
		return &w, nil
	},
)

var weblockTable = newTable("weblocks",
	withGear("material", "front_pin", "attachment_point"),
	func(w *domain.Weblock) []any {
		return append(gearValues(&w.GearSpec),
			string(w.Material),
			nullableEnum(w.FrontPin),
			nullableEnum(w.AttachmentPoint),
		)
	},
	func(sc scanner) (*domain.Weblock, error) {
		var (
			w                    domain.Weblock
			row                  gearRow
			frontPin, attachment sql.NullString
		)
		dest := append([]any{&w.ID}, row.dest(&w.GearSpec)...)
		dest = append(dest, &w.Material, &frontPin, &attachment)
		if err := sc.Scan(dest...); err != nil {
			return nil, err
		}
		row.assign(&w.GearSpec)
		w.FrontPin = enumPtr[domain.FrontPin](frontPin)
		w.AttachmentPoint = enumPtr[domain.AttachmentPoint](attachment)
		return &w, nil
	},
)

var rollerTable = newTable("rollers",
	withGear("material", "roller_material", "slider_type", "lock_type", "bearing_material"),
	func(r *domain.Roller) []any {
		return append(gearValues(&r.GearSpec),
			string(r.Material),
			string(r.RollerMaterial),
			string(r.SliderType),
			string(r.LockType),
			string(r.BearingMaterial),
		)
	},
	func(sc scanner) (*domain.Roller, error) {
		var (
			r   domain.Roller
			row gearRow
		)
		dest := append([]any{&r.ID}, row.dest(&r.GearSpec)...)
		dest = append(dest, &r.Material, &r.RollerMaterial, &r.SliderType, &r.LockType, &r.BearingMaterial)
		if err := sc.Scan(dest...); err != nil {
			return nil, err
		}
		row.assign(&r.GearSpec)
		return &r, nil
	},
)

type gearRepo[T any, PT entityPtr[T]] struct {
	*repo[T, PT]
}

func (r *gearRepo[T, PT]) NamesByBrand(ctx context.Context, brandID int64) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT name FROM "+r.t.name+" WHERE brand_id = ? ORDER BY id", brandID)
	if err != nil {
		return nil, fmt.Errorf("names by brand: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
