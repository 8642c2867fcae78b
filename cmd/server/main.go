package main

import (
	"log/slog"
	"net/http"

	"github.com/daykeep/daykeep/internal/app"
	"github.com/daykeep/daykeep/internal/config"
	"github.com/daykeep/daykeep/internal/logger"
	"github.com/daykeep/daykeep/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	// Correct day statuses for time elapsed while the app was down.
	_, err = app.GoalService.State()
	if err != nil {
		slog.Error("failed to sync goals on startup", "error", err)
		panic(err)
	}

	handler := routes.SetupRoutes(app)
	slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv, "url", "http://localhost:"+cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server failed", "error", err)
		panic(err)
	}
}
