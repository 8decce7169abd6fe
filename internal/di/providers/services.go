package providers

import (
	"github.com/samber/do/v2"

	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/service"
	"github.com/slackdb/slackdb-server/internal/validation"
)

// ProvideValidator provides the shared entity validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideBrandService provides the brand service.
func ProvideBrandService(i do.Injector) (*service.BrandService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBrandService(storeHandle.Store, v, searchService, log.Logger), nil
}

// ProvideWebbingService provides the webbing service.
func ProvideWebbingService(i do.Injector) (*service.WebbingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWebbingService(storeHandle.Store, v, searchService, log.Logger), nil
}

// ProvideWeblockService provides the weblock service.
func ProvideWeblockService(i do.Injector) (*service.WeblockService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWeblockService(storeHandle.Store, v, searchService, log.Logger), nil
}

// ProvideRollerService provides the roller service.
func ProvideRollerService(i do.Injector) (*service.RollerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRollerService(storeHandle.Store, v, searchService, log.Logger), nil
}
