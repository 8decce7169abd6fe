// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/slackdb/slackdb-server/internal/config"
	"github.com/slackdb/slackdb-server/internal/di/providers"
	"github.com/slackdb/slackdb-server/internal/ingest"
	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/metrics"
	"github.com/slackdb/slackdb-server/internal/service"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideValidator)

	// Persistence
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Ingestion
	do.Provide(injector, providers.ProvidePipeline)
	do.Provide(injector, providers.ProvideSeeder)

	// Business services
	do.Provide(injector, providers.ProvideBrandService)
	do.Provide(injector, providers.ProvideWebbingService)
	do.Provide(injector, providers.ProvideWeblockService)
	do.Provide(injector, providers.ProvideRollerService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services, seeds an empty catalog and starts the
// HTTP server. The store is seeded before the server accepts requests.
func Bootstrap(ctx context.Context, injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*ingest.Pipeline](injector)
	_ = do.MustInvoke[*ingest.Seeder](injector)

	// Business services
	_ = do.MustInvoke[*service.BrandService](injector)
	_ = do.MustInvoke[*service.WebbingService](injector)
	_ = do.MustInvoke[*service.WeblockService](injector)
	_ = do.MustInvoke[*service.RollerService](injector)

	providers.RunStartupSeed(ctx, injector)
	providers.ReindexIfNeeded(ctx, injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
