package providers

import (
	"fmt"

	"github.com/samber/do/v2"

	"github.com/slackdb/slackdb-server/internal/config"
	"github.com/slackdb/slackdb-server/internal/logger"
	"github.com/slackdb/slackdb-server/internal/store"
	"github.com/slackdb/slackdb-server/internal/store/badgerstore"
	"github.com/slackdb/slackdb-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured persistence backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := OpenStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}
	return &StoreHandle{Store: st}, nil
}

// OpenStore opens the backend named by cfg. The CLI shares it with the server.
func OpenStore(cfg config.StoreConfig, log *logger.Logger) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		st, err := badgerstore.Open(cfg.BadgerPath(), log.Component("store"))
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		log.Info("Store initialized", "backend", cfg.Backend, "path", cfg.BadgerPath())
		return st, nil
	case config.BackendSQLite, "":
		st, err := sqlite.Open(cfg.SQLitePath(), log.Component("store"))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info("Store initialized", "backend", config.BackendSQLite, "path", cfg.SQLitePath())
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
