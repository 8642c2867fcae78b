package service

import (
	"fmt"
	"sync"

	"github.com/daykeep/daykeep/internal/apperr"
	"github.com/daykeep/daykeep/internal/model"
	"github.com/daykeep/daykeep/internal/repository"
)

// GoalService orchestrates the goal tracker: it loads the persisted
// state, syncs day statuses against the current date before every
// operation, applies the mutation, and persists the result. Mutations
// against the state are serialized here; the entities themselves carry no
// locking.
type GoalService struct {
	repo repository.StateRepository
	now  model.Clock
	mu   sync.Mutex
}

func NewGoalService(repo repository.StateRepository, now model.Clock) *GoalService {
	return &GoalService{repo: repo, now: now}
}

// load reads the state and corrects day statuses for elapsed real time.
func (s *GoalService) load() (*model.AppState, error) {
	state, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	state.SyncGoals()
	return state, nil
}

// State returns the full synced app state, persisting any status
// corrections that elapsed time produced.
func (s *GoalService) State() (*model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// CreateGoal builds a goal from params, appends it, and selects it.
func (s *GoalService) CreateGoal(params model.CreateGoalDTO) (*model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}

	goal, err := model.NewGoal(s.now, params)
	if err != nil {
		return nil, err
	}

	state.Goals = append(state.Goals, goal)
	state.SelectedGoalID = goal.ID
	if err := s.repo.Save(state); err != nil {
		return nil, err
	}
	return goal, nil
}

// Goals returns all goals, synced.
func (s *GoalService) Goals() ([]*model.Goal, error) {
	state, err := s.State()
	if err != nil {
		return nil, err
	}
	return state.Goals, nil
}

// GoalByID returns one goal, synced.
func (s *GoalService) GoalByID(id string) (*model.Goal, error) {
	state, err := s.State()
	if err != nil {
		return nil, err
	}
	goal := state.Goal(id)
	if goal == nil {
		return nil, apperr.New("Goal not found", "")
	}
	return goal, nil
}

// SelectGoal makes the goal with the given id the selected one.
func (s *GoalService) SelectGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if state.SelectedGoalID == id {
		return apperr.New("Goal already selected", "")
	}
	if state.Goal(id) == nil {
		return apperr.New("Goal not found", "")
	}
	state.SelectedGoalID = id
	return s.repo.Save(state)
}

// RemoveGoal deletes a goal whole, clearing the selection when it pointed
// there.
func (s *GoalService) RemoveGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if state.Goal(id) == nil {
		return apperr.New("Goal not found", "")
	}

	goals := state.Goals[:0]
	for _, g := range state.Goals {
		if g.ID != id {
			goals = append(goals, g)
		}
	}
	state.Goals = goals
	if state.SelectedGoalID == id {
		state.SelectedGoalID = ""
	}
	return s.repo.Save(state)
}

// CompleteDay completes a day of a goal the normal way. A normal
// completion earns one coin.
func (s *GoalService) CompleteDay(goalID, date, note string) (*model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	goal := state.Goal(goalID)
	if goal == nil {
		return nil, apperr.New("Goal not found", "")
	}

	if err := goal.CompleteDay(date, false, note); err != nil {
		return nil, err
	}

	state.Coins++
	if err := s.repo.Save(state); err != nil {
		return nil, err
	}
	return goal, nil
}

// CompleteTodayWithCoins completes today's day of a coin-backed goal by
// spending coins from the wallet. The date must name the goal's today
// day; coins never buy any other day.
func (s *GoalService) CompleteTodayWithCoins(goalID, date, note string) (*model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	goal := state.Goal(goalID)
	if goal == nil {
		return nil, apperr.New("Goal not found", "")
	}

	todayDay := goal.TodayDay()
	if todayDay == nil {
		return nil, apperr.New("Day not found", "The goal has no day for today.")
	}
	if date != todayDay.Date {
		return nil, apperr.New("Coins can only buy today", "Bought completions are only allowed for the current day.")
	}
	if todayDay.Status == model.GoalDayStatusSuccess {
		return nil, apperr.New("Day already completed", "Today's goal is already completed.")
	}
	if !canUseCoins(state, goal) {
		return nil, apperr.New("Not enough coins",
			fmt.Sprintf("You need %d coins to complete this goal.", goal.Coins))
	}

	if err := goal.CompleteDay(todayDay.Date, true, note); err != nil {
		return nil, err
	}

	state.Coins -= goal.Coins
	if err := s.repo.Save(state); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateDayNote replaces the note of a resolved day.
func (s *GoalService) UpdateDayNote(goalID, date, note string) (*model.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return nil, err
	}
	goal := state.Goal(goalID)
	if goal == nil {
		return nil, apperr.New("Goal not found", "")
	}

	if err := goal.UpdateDayNote(date, note); err != nil {
		return nil, err
	}

	if err := s.repo.Save(state); err != nil {
		return nil, err
	}
	return goal, nil
}

// Coins returns the current wallet balance.
func (s *GoalService) Coins() (int, error) {
	state, err := s.State()
	if err != nil {
		return 0, err
	}
	return state.Coins, nil
}

// CanUseCoins reports whether the goal's today day can currently be
// bought: the goal uses coins, today is still pending, and the wallet
// covers the cost.
func (s *GoalService) CanUseCoins(goalID string) (bool, error) {
	state, err := s.State()
	if err != nil {
		return false, err
	}
	goal := state.Goal(goalID)
	if goal == nil {
		return false, apperr.New("Goal not found", "")
	}
	return canUseCoins(state, goal), nil
}

func canUseCoins(state *model.AppState, goal *model.Goal) bool {
	if !goal.UseCoins {
		return false
	}
	todayDay := goal.TodayDay()
	if todayDay == nil || todayDay.Status != model.GoalDayStatusPendingToday {
		return false
	}
	return state.Coins >= goal.Coins
}
