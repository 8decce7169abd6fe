package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/slackdb/slackdb-server/internal/config"
	"github.com/slackdb/slackdb-server/internal/ingest"
	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/metrics"
	"github.com/slackdb/slackdb-server/internal/service"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(_ do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}

// ProvidePipeline provides the ingestion pipeline reading the configured seed files.
func ProvidePipeline(i do.Injector) (*ingest.Pipeline, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return ingest.NewPipeline(storeHandle.Store, cfg.Seed.File, v, m, log.Component("ingest")), nil
}

// ProvideSeeder provides the startup seeder.
func ProvideSeeder(i do.Injector) (*ingest.Seeder, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	pipeline := do.MustInvoke[*ingest.Pipeline](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	var index ingest.Reindexer
	if searchService.Enabled() {
		index = searchService
	}
	return ingest.NewSeeder(storeHandle.Store, pipeline, index, log.Component("seed")), nil
}

// RunStartupSeed seeds empty gear tables when enabled. Failures are logged;
// the server still starts.
func RunStartupSeed(ctx context.Context, i do.Injector) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Seed.OnStartup {
		log.Info("Startup seeding disabled by configuration")
		return
	}

	seeder := do.MustInvoke[*ingest.Seeder](i)
	summary, err := seeder.SeedIfEmpty(ctx)
	if err != nil {
		log.Warn("Startup seeding interrupted", "error", err)
		return
	}
	for _, failed := range summary.Failed() {
		log.Error("Seeding failed", "kind", string(failed.Kind), "error", failed.Err)
	}
}
