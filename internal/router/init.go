package router

import (
	"github.com/oksasatya/data-labeling-backend/config"
	"github.com/oksasatya/data-labeling-backend/internal/application"
	"github.com/oksasatya/data-labeling-backend/internal/container"
	repo "github.com/oksasatya/data-labeling-backend/internal/domain/repository"
	"github.com/oksasatya/data-labeling-backend/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/data-labeling-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/data-labeling-backend/internal/infrastructure/search"
	handlers "github.com/oksasatya/data-labeling-backend/internal/interface/http"
	"github.com/oksasatya/data-labeling-backend/internal/router/modules"
	"github.com/oksasatya/data-labeling-backend/pkg/helpers"
)

// Services groups the application services shared by the HTTP modules.
type Services struct {
	Groups    *application.GroupService
	Labels    *application.LabelService
	Templates *application.TemplateService
	Users     *application.UserService
}

// buildStore picks the persistence backend from STORE_DRIVER.
func buildStore(cfg *config.Config) (repo.Store, repo.TxRunner) {
	if cfg.StoreDriver == config.StoreDriverPostgres && container.GetPGPool() != nil {
		pool := container.GetPGPool()
		return pginfra.NewStore(pool), pginfra.NewTxRunner(pool)
	}
	mem := container.GetMemoryStore()
	return mem, mem
}

// BuildServices wires repositories, optional search and event publishing into services.
func BuildServices(cfg *config.Config) Services {
	logger := container.GetLogger()
	store, tx := buildStore(cfg)

	var events application.EventPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		events = messaging.NewEventPublisher(pub)
	}
	var index application.UserIndex
	if es := container.GetES(); es != nil {
		index = search.NewUserIndex(es, cfg.ESUsersIndex)
	}

	return Services{
		Groups:    application.NewGroupService(store.Groups(), tx, events, logger),
		Labels:    application.NewLabelService(store.Labels(), tx, events, logger),
		Templates: application.NewTemplateService(store.Templates()),
		Users: application.NewUserService(
			store.Users(),
			store.Groups(),
			tx,
			helpers.BcryptHasher{},
			application.UserServiceConfig{AdminCode: cfg.AdminCode},
			index,
			events,
			logger,
		),
	}
}

// InitModules builds every feature module from the container and adds it to
// the registry. Call once at startup, before RegisterAll.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := BuildServices(cfg)
	rdb := container.GetRedis()

	r.Add(
		modules.NewGroupModule(handlers.NewGroupHandler(svc.Groups, logger)),
		modules.NewLabelModule(handlers.NewLabelHandler(svc.Labels, logger)),
		modules.NewTemplateModule(handlers.NewTemplateHandler(svc.Templates, logger)),
		modules.NewUserModule(handlers.NewUserHandler(svc.Users, logger), rdb),
	)

	var db modules.Pinger
	if pool := container.GetPGPool(); pool != nil {
		db = pool
	}
	r.Add(modules.NewHealthModule(db))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}
}
