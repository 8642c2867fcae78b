package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/daykeep/daykeep/internal/config"
	"github.com/daykeep/daykeep/internal/db"
	"github.com/daykeep/daykeep/internal/model"
	"github.com/daykeep/daykeep/internal/repository"
	"github.com/daykeep/daykeep/internal/service"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	GoalService *service.GoalService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	kvRepository := repository.NewKVRepository(database)
	stateRepository := repository.NewStateRepository(kvRepository, model.SystemClock)

	// Services
	goalService := service.NewGoalService(stateRepository, model.SystemClock)

	return &App{
		Cfg:         cfg,
		DB:          database,
		GoalService: goalService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
