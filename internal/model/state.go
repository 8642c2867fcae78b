package model

import (
	"encoding/json"
	"fmt"
)

// AppState is everything the application persists: the goals, the coin
// balance, and which goal is currently selected. The wallet and the
// selection live here, outside the goal entities themselves.
type AppState struct {
	Goals          []*Goal `json:"goals"`
	Coins          int     `json:"coins"`
	SelectedGoalID string  `json:"selectedGoalId,omitempty"`
}

// NewAppState returns an empty state.
func NewAppState() *AppState {
	return &AppState{Goals: []*Goal{}}
}

// Goal returns the goal with the given id, or nil.
func (s *AppState) Goal(id string) *Goal {
	for _, g := range s.Goals {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// SelectedGoal returns the currently selected goal, or nil.
func (s *AppState) SelectedGoal() *Goal {
	if s.SelectedGoalID == "" {
		return nil
	}
	return s.Goal(s.SelectedGoalID)
}

// HasGoals reports whether any goal exists.
func (s *AppState) HasGoals() bool {
	return len(s.Goals) > 0
}

// SyncGoals runs SyncDays on every goal.
func (s *AppState) SyncGoals() {
	for _, g := range s.Goals {
		g.SyncDays()
	}
}

// Clone returns a deep value copy.
func (s *AppState) Clone() *AppState {
	c := *s
	c.Goals = CloneGoals(s.Goals)
	return &c
}

// ToJSON renders the persisted shape {goals, coins, selectedGoalId}.
func (s *AppState) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

// StateFromJSON reconstructs the app state, attaching the clock to every
// goal.
func StateFromJSON(data []byte, now Clock) (*AppState, error) {
	var s AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if s.Goals == nil {
		s.Goals = []*Goal{}
	}
	for _, g := range s.Goals {
		if err := g.attach(now); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
