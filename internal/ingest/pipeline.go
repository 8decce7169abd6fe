package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tidwall/gjson"

	"github.com/slackdb/slackdb-server/internal/domain"
	"github.com/slackdb/slackdb-server/internal/id"
	"github.com/slackdb/slackdb-server/internal/metrics"
	"github.com/slackdb/slackdb-server/internal/normalize"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// SourceFunc returns the source file path for a gear kind.
type SourceFunc func(kind string) string

// Report describes one finished ingestion of a source file.
type Report struct {
	RunID         string      `json:"run_id"`
	Kind          domain.Kind `json:"kind"`
	Source        string      `json:"source"`
	Read          int         `json:"read"`
	Persisted     int         `json:"persisted"`
	Skipped       int         `json:"skipped"`
	BrandsCreated int         `json:"brands_created"`
}

// Pipeline loads, cleans and persists one gear kind at a time.
type Pipeline struct {
	store     store.Store
	sources   SourceFunc
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *slog.Logger
	kinds     map[domain.Kind]runner
}

// runner ingests already-read records of one kind.
type runner func(ctx context.Context, p *Pipeline, log *slog.Logger, records []gjson.Result, rep *Report) error

// NewPipeline creates a pipeline. metrics may be nil.
func NewPipeline(s store.Store, sources SourceFunc, v *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		store:     s,
		sources:   sources,
		validator: v,
		metrics:   m,
		logger:    logger,
		kinds: map[domain.Kind]runner{
			domain.KindWebbing: gearRunner(normalize.WebbingRules(), store.Store.Webbings),
			domain.KindWeblock: gearRunner(normalize.WeblockRules(), store.Store.Weblocks),
			domain.KindRoller:  gearRunner(normalize.RollerRules(), store.Store.Rollers),
		},
	}
}

// Ingest reads the configured source file for kind and persists every
// record that survives cleaning. It returns the number persisted.
func (p *Pipeline) Ingest(ctx context.Context, kind domain.Kind) (int, error) {
	rep, err := p.IngestFile(ctx, kind, p.sources(string(kind)))
	return rep.Persisted, err
}

// IngestFile is Ingest with an explicit source path.
func (p *Pipeline) IngestFile(ctx context.Context, kind domain.Kind, path string) (Report, error) {
	rep := Report{RunID: id.RunID(), Kind: kind, Source: path}

	run, ok := p.kinds[kind]
	if !ok {
		return rep, fmt.Errorf("ingest: %q is not a gear kind", kind)
	}

	log := p.logger.With("run_id", rep.RunID, "kind", string(kind))
	start := time.Now()

	err := p.ingest(ctx, run, log, &rep)

	result := metrics.ResultOK
	switch {
	case err != nil:
		result = metrics.ResultFailed
		log.Error("ingestion failed", "source", path, "error", err)
	case rep.Persisted == 0:
		result = metrics.ResultEmpty
	}
	p.metrics.IngestRun(string(kind), result, time.Since(start))
	p.metrics.RecordsProcessed(string(kind), metrics.OutcomePersisted, rep.Persisted)
	p.metrics.RecordsProcessed(string(kind), metrics.OutcomeSkipped, rep.Skipped)
	p.metrics.BrandsCreated(rep.BrandsCreated)

	return rep, err
}

func (p *Pipeline) ingest(ctx context.Context, run runner, log *slog.Logger, rep *Report) error {
	if rep.Source == "" {
		return fmt.Errorf("%w: no source configured for %s", ErrSourceMissing, rep.Kind)
	}

	records, err := ReadJSONArray(rep.Source)
	if err != nil {
		return err
	}
	rep.Read = len(records)
	log.Info("ingesting source", "source", rep.Source, "records", rep.Read)

	if err := run(ctx, p, log, records, rep); err != nil {
		return err
	}

	log.Info("ingestion complete",
		"persisted", rep.Persisted,
		"skipped", rep.Skipped,
		"brands_created", rep.BrandsCreated,
	)
	return nil
}

// gearRunner builds the runner for one gear kind from its rule table and
// repository accessor.
func gearRunner[T any, PT interface {
	*T
	domain.Gear
}](cleaner *normalize.Cleaner[T], repo func(store.Store) store.GearRepository[T]) runner {
	return func(ctx context.Context, p *Pipeline, log *slog.Logger, records []gjson.Result, rep *Report) error {
		// Clean and validate everything first so neither an unknown currency
		// nor an invalid record leaves a brand behind.
		cleaned := make([]*normalize.Cleaned[T], 0, len(records))
		for i, rec := range records {
			c, err := cleaner.Clean(rec)
			if errors.Is(err, normalize.ErrUnknownCurrency) {
				return fmt.Errorf("record %d (%s): %w", i, recordName(rec), err)
			}
			if err == nil && p.validator != nil {
				err = p.validator.ValidateExcept(c.Entity, "brand_id")
			}
			if err != nil {
				rep.Skipped++
				log.Warn("record skipped", "index", i, "name", recordName(rec), "error", err)
				continue
			}
			cleaned = append(cleaned, c)
		}

		resolver := NewBrandResolver(p.store.Brands(), log)
		pending := make([]*T, 0, len(cleaned))
		for _, c := range cleaned {
			e := PT(c.Entity)
			brandID, err := resolver.Resolve(ctx, c.BrandName)
			if err != nil {
				rep.Skipped++
				log.Warn("record skipped", "name", e.DisplayName(), "brand", c.BrandName, "error", err)
				continue
			}
			e.SetBrandID(brandID)
			pending = append(pending, c.Entity)
		}
		rep.BrandsCreated = resolver.Created()

		if len(pending) == 0 {
			log.Info("nothing to persist")
			return nil
		}

		err := p.store.InTx(ctx, func(tx store.Store) error {
			r := repo(tx)
			for _, e := range pending {
				if err := r.Insert(ctx, e); err != nil {
					return fmt.Errorf("insert %q: %w", PT(e).DisplayName(), err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		rep.Persisted = len(pending)
		return nil
	}
}

// recordName finds a name for log lines in a record that may have failed
// cleaning.
func recordName(rec gjson.Result) string {
	for _, key := range []string{"name", "product_name"} {
		if v := rec.Get(key); v.Exists() {
			return v.String()
		}
	}
	return ""
}
