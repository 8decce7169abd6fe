package api

import (
	"github.com/slackdb/slackdb-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Brand   *service.BrandService
	Webbing *service.WebbingService
	Weblock *service.WeblockService
	Roller  *service.RollerService
	Search  *service.SearchService
}
