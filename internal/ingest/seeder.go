package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/store"
)

// Reindexer rebuilds a derived index after the catalog changes.
type Reindexer interface {
	Reindex(ctx context.Context) error
}

// KindResult is the seeding outcome for one gear kind.
type KindResult struct {
	Kind    domain.Kind `json:"kind"`
	Skipped bool        `json:"skipped"` // table already had rows
	Added   int         `json:"added"`
	Err     error       `json:"-"`
}

// Summary collects the per-kind results of one startup seed.
type Summary struct {
	Results []KindResult `json:"results"`
}

// Added returns the total number of entities persisted.
func (s Summary) Added() int {
	n := 0
	for _, r := range s.Results {
		n += r.Added
	}
	return n
}

// Failed returns the results that ended in an error.
func (s Summary) Failed() []KindResult {
	var failed []KindResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Seeder runs the startup gate: each gear kind is ingested only while its
// table is empty.
type Seeder struct {
	store    store.Store
	pipeline *Pipeline
	index    Reindexer
	logger   *slog.Logger
}

// NewSeeder creates a seeder. index may be nil when search is disabled.
func NewSeeder(s store.Store, p *Pipeline, index Reindexer, logger *slog.Logger) *Seeder {
	return &Seeder{store: s, pipeline: p, index: index, logger: logger}
}

// SeedIfEmpty ingests every gear kind whose table is empty, in the order
// webbing, weblock, roller. A failing kind is logged and recorded; the
// others still run. The returned error is only set when ctx is done.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (Summary, error) {
	var sum Summary

	for _, kind := range domain.GearKinds {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sum.Results = append(sum.Results, s.seedKind(ctx, kind))
	}

	if sum.Added() > 0 && s.index != nil {
		if err := s.index.Reindex(ctx); err != nil {
			s.logger.Warn("search reindex after seeding failed", "error", err)
		}
	}

	s.logger.Info("seeding finished", "added", sum.Added(), "failed_kinds", len(sum.Failed()))
	return sum, nil
}

func (s *Seeder) seedKind(ctx context.Context, kind domain.Kind) KindResult {
	res := KindResult{Kind: kind}

	n, err := CountKind(ctx, s.store, kind)
	if err != nil {
		res.Err = err
		s.logger.Error("count before seeding failed", "kind", string(kind), "error", err)
		return res
	}
	if n > 0 {
		res.Skipped = true
		s.logger.Debug("table not empty, seeding skipped", "kind", string(kind), "count", n)
		return res
	}

	res.Added, res.Err = s.pipeline.Ingest(ctx, kind)
	return res
}

// CountKind returns the number of stored entities of kind.
func CountKind(ctx context.Context, s store.Store, kind domain.Kind) (int, error) {
	switch kind {
	case domain.KindBrand:
		return s.Brands().Count(ctx)
	case domain.KindWebbing:
		return s.Webbings().Count(ctx)
	case domain.KindWeblock:
		return s.Weblocks().Count(ctx)
	case domain.KindRoller:
		return s.Rollers().Count(ctx)
	default:
		return 0, fmt.Errorf("unknown kind %q", kind)
	}
}
