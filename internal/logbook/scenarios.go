package logbook

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/claude/repshape/internal/composition"
	"github.com/claude/repshape/internal/storage"
)

// Scenarios returns the saved what-if scenarios, newest first.
func (l *Logbook) Scenarios() []composition.Scenario {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.scenarios)
}

// SaveScenario stores a named set of inputs. A blank name becomes
// "Scenario N".
func (l *Logbook) SaveScenario(ctx context.Context, name string, in composition.Inputs) (composition.Scenario, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := composition.NewScenario(name, in, len(l.scenarios), l.now())
	next := append([]composition.Scenario{s}, l.scenarios...)
	if err := l.saveScenarios(ctx, next); err != nil {
		return composition.Scenario{}, err
	}
	l.log.Info("scenario saved", "id", s.ID, "name", s.Name, "goal", s.Inputs.Goal.Type)
	return s, nil
}

// DeleteScenario removes a scenario.
func (l *Logbook) DeleteScenario(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.IndexFunc(l.scenarios, func(s composition.Scenario) bool { return s.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	return l.saveScenarios(ctx, slices.Delete(slices.Clone(l.scenarios), i, i+1))
}

func (l *Logbook) saveScenarios(ctx context.Context, scenarios []composition.Scenario) error {
	raw, err := json.Marshal(scenarios)
	if err != nil {
		return fmt.Errorf("encoding scenarios: %w", err)
	}
	if err := l.store.Put(ctx, storage.KeyScenarios, raw); err != nil {
		return err
	}
	l.scenarios = scenarios
	return nil
}
