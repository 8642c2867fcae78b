package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/daykeep/daykeep/internal/apperr"
	"github.com/daykeep/daykeep/internal/model"
	"github.com/daykeep/daykeep/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.Goals()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params model.CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, r, apperr.New("Invalid goal", "The request body is not a valid goal."))
		return
	}

	goal, err := h.goalService.CreateGoal(params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) Detail(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.GoalByID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := h.goalService.SelectGoal(r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.goalService.RemoveGoal(r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dayActionBody struct {
	Note string `json:"note"`
}

func (h *GoalHandler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDayAction(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.CompleteDay(r.PathValue("id"), r.PathValue("date"), body.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) BuyDay(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDayAction(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := h.goalService.CompleteTodayWithCoins(r.PathValue("id"), r.PathValue("date"), body.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) UpdateDayNote(w http.ResponseWriter, r *http.Request) {
	var body dayActionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, apperr.New("Invalid note", "The request body is not a valid note."))
		return
	}

	goal, err := h.goalService.UpdateDayNote(r.PathValue("id"), r.PathValue("date"), body.Note)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// decodeDayAction reads the optional {note} body. Completion endpoints
// accept an empty body, but a malformed one is still rejected.
func decodeDayAction(r *http.Request) (dayActionBody, error) {
	var body dayActionBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil && err != io.EOF {
		return body, apperr.New("Invalid request body", "The request body is not valid JSON.")
	}
	return body, nil
}
