package repository

import (
	"fmt"

	"github.com/daykeep/daykeep/internal/model"
)

// stateKey is the single storage key the whole app state lives under.
const stateKey = "state"

// StateRepository persists the application state as its serialized JSON
// projection. Loading always goes through the model's FromJSON
// reconstruction so goals come back with behavior attached, never as raw
// decoded data.
type StateRepository interface {
	Load() (*model.AppState, error)
	Save(state *model.AppState) error
}

type stateRepository struct {
	kv  KVRepository
	now model.Clock
}

func NewStateRepository(kv KVRepository, now model.Clock) StateRepository {
	return &stateRepository{kv: kv, now: now}
}

func (r *stateRepository) Load() (*model.AppState, error) {
	data, ok, err := r.kv.Get(stateKey)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !ok {
		return model.NewAppState(), nil
	}

	state, err := model.StateFromJSON(data, r.now)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return state, nil
}

func (r *stateRepository) Save(state *model.AppState) error {
	data, err := state.ToJSON()
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	if err := r.kv.Set(stateKey, data); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
