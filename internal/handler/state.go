package handler

import (
	"net/http"

	"github.com/daykeep/daykeep/internal/service"
)

type StateHandler struct {
	goalService *service.GoalService
}

func NewStateHandler(goalService *service.GoalService) *StateHandler {
	return &StateHandler{
		goalService: goalService,
	}
}

// State serves the full synced app state: goals, coin balance, and the
// selected goal id.
func (h *StateHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.goalService.State()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
