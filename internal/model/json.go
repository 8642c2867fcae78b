package model

import (
	"encoding/json"
	"fmt"

	"github.com/daykeep/daykeep/internal/apperr"
)

// Serialization round-trips the exact persisted shape: a goal is
// {id, description, useCoins, coins, days}, a day is
// {id, count, date, status, isBought, note}. Reconstruction goes through
// the FromJSON functions so decoded goals come back with their clock
// attached and their statuses validated; storage collaborators must never
// use raw decoded structs.

// ToJSON renders the goal's persisted projection.
func (g *Goal) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}

// GoalFromJSON reconstructs a goal from its persisted projection,
// attaching the given clock to the goal and every day.
func GoalFromJSON(data []byte, now Clock) (*Goal, error) {
	var g Goal
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode goal: %w", err)
	}
	if err := g.attach(now); err != nil {
		return nil, err
	}
	return &g, nil
}

// GoalsToJSON renders a goal list element-wise, preserving order.
func GoalsToJSON(goals []*Goal) ([]byte, error) {
	return json.Marshal(goals)
}

// GoalsFromJSON reconstructs a goal list element-wise, preserving order.
func GoalsFromJSON(data []byte, now Clock) ([]*Goal, error) {
	var goals []*Goal
	if err := json.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	for _, g := range goals {
		if err := g.attach(now); err != nil {
			return nil, err
		}
	}
	return goals, nil
}

// attach re-binds the clock after decoding and rejects unknown statuses.
func (g *Goal) attach(now Clock) error {
	g.now = now
	for _, day := range g.Days {
		if !day.Status.Valid() {
			return apperr.New("Invalid goal data", fmt.Sprintf("Day %s has unknown status %q.", day.Date, day.Status))
		}
		day.now = now
	}
	return nil
}
