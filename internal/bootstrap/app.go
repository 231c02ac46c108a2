package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"regportal-backend/internal/applications"
	"regportal-backend/internal/documents"
	"regportal-backend/internal/regbodies"
	"regportal-backend/internal/replay"
	"regportal-backend/internal/shared/config"
	"regportal-backend/internal/shared/server"
	"regportal-backend/internal/shared/storage/db"
	localstore "regportal-backend/internal/shared/storage/object/local"
	"regportal-backend/internal/shared/telemetry"
	"regportal-backend/internal/ussd"
	"regportal-backend/internal/users"
)

// App bundles the wired router and services.
type App struct {
	Router       *gin.Engine
	DB           *sql.DB
	Users        *users.Service
	Documents    *documents.Service
	Applications *applications.Service
	Replay       *replay.Service
}

// Build wires repositories, services and handlers from configuration. With no
// reachable database the portal runs on in-memory repositories, which is how
// tests and local demos run it.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB := openDatabase(ctx, cfg)

	var (
		userRepo users.Repo
		docRepo  documents.Repo
		appRepo  applications.Repo
	)
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		docRepo = &documents.PGRepo{DB: sqlDB}
		appRepo = &applications.PGRepo{DB: sqlDB}
	} else {
		userRepo = users.NewMemoryRepo()
		docRepo = documents.NewMemoryRepo()
		appRepo = applications.NewMemoryRepo()
	}

	store := localstore.New(cfg.LocalStoreDir)

	userSvc := users.NewService(userRepo)
	if err := userSvc.EnsureDemoUser(ctx); err != nil {
		telemetry.Warn("bootstrap.demo_user_failed", map[string]any{"error": err.Error()})
	}

	docSvc := documents.NewService(store, docRepo)
	appSvc := applications.NewService(appRepo)
	replaySvc := replay.NewService(docSvc, appSvc)

	regHandler, err := regbodies.NewHandler()
	if err != nil {
		return nil, fmt.Errorf("load regulatory bodies: %w", err)
	}

	router := server.NewRouter(cfg, server.Handlers{
		Users:        users.NewHandler(userSvc),
		Documents:    documents.NewHandler(docSvc),
		Applications: applications.NewHandler(appSvc),
		Replay:       replay.NewHandler(replaySvc),
		USSD:         ussd.NewHandler(),
		RegBodies:    regHandler,
	})

	return &App{
		Router:       router,
		DB:           sqlDB,
		Users:        userSvc,
		Documents:    docSvc,
		Applications: appSvc,
		Replay:       replaySvc,
	}, nil
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func openDatabase(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		telemetry.Warn("bootstrap.db_connect_failed", map[string]any{"error": err.Error()})
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		telemetry.Warn("bootstrap.db_migrate_failed", map[string]any{"error": err.Error()})
		conn.Close()
		return nil
	}
	return conn
}
