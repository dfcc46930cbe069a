package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/data-labeling-backend/config"
	"github.com/oksasatya/data-labeling-backend/internal/application"
	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
	pginfra "github.com/oksasatya/data-labeling-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/data-labeling-backend/internal/seed"
	"github.com/oksasatya/data-labeling-backend/pkg/helpers"
)

// seed loads the template catalog into postgres and can create a first admin.
//
//	go run ./cmd/seed -templates templates.json -admin-username admin -admin-password secret
func main() {
	templatesPath := flag.String("templates", "", "JSON file with [{templateNo, template}]; built-in catalog when empty")
	adminUsername := flag.String("admin-username", "", "create an ADMIN user with this username")
	adminPassword := flag.String("admin-password", "", "password for the seeded admin")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	templates := seed.DefaultTemplates()
	if *templatesPath != "" {
		templates, err = seed.LoadTemplates(*templatesPath)
		if err != nil {
			log.Fatalf("failed to load templates: %v", err)
		}
	}

	repo := pginfra.NewTemplateRepository(pool)
	for _, t := range templates {
		if err := repo.Upsert(ctx, t); err != nil {
			log.Fatalf("failed to seed template: %v", err)
		}
		logger.WithFields(logrus.Fields{"id": t.ID, "template_no": t.TemplateNo}).Info("template seeded")
	}

	if *adminUsername == "" {
		return
	}
	if *adminPassword == "" {
		log.Fatal("-admin-password is required with -admin-username")
	}
	if cfg.AdminCode == "" {
		log.Fatal("ADMIN_CODE must be set to seed an admin user")
	}

	store := pginfra.NewStore(pool)
	users := application.NewUserService(
		store.Users(),
		store.Groups(),
		pginfra.NewTxRunner(pool),
		helpers.BcryptHasher{},
		application.UserServiceConfig{AdminCode: cfg.AdminCode},
		nil,
		nil,
		logger,
	)
	code := cfg.AdminCode
	u, err := users.CreateUser(ctx, application.CreateUserInput{
		Username:  *adminUsername,
		Password:  *adminPassword,
		AdminCode: &code,
	})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if u.Role != entity.RoleAdmin {
		log.Fatalf("seeded user %s did not get the admin role", u.ID)
	}
	logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("admin user seeded")
}
