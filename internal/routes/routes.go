package routes

import (
	"net/http"

	"github.com/daykeep/daykeep/internal/app"
	"github.com/daykeep/daykeep/internal/handler"
	"github.com/daykeep/daykeep/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler()
	state := handler.NewStateHandler(app.GoalService)
	goal := handler.NewGoalHandler(app.GoalService)

	mux := http.NewServeMux()

	// Liveness
	mux.HandleFunc("GET /healthz", health.Healthz)

	// App state
	mux.HandleFunc("GET /api/state", state.State)

	// Goals (writes rate limited)
	rateLimiter := middleware.RateLimitWrites()

	mux.HandleFunc("GET /api/goals", goal.List)
	mux.HandleFunc("POST /api/goals", rateLimiter(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", goal.Detail)
	mux.HandleFunc("POST /api/goals/{id}/select", rateLimiter(goal.Select))
	mux.HandleFunc("DELETE /api/goals/{id}", rateLimiter(goal.Remove))

	// Days
	mux.HandleFunc("POST /api/goals/{id}/days/{date}/complete", rateLimiter(goal.CompleteDay))
	mux.HandleFunc("POST /api/goals/{id}/days/{date}/buy", rateLimiter(goal.BuyDay))
	mux.HandleFunc("PUT /api/goals/{id}/days/{date}/note", rateLimiter(goal.UpdateDayNote))

	return middleware.Chain(mux,
		middleware.RequestLogging,
	)
}
