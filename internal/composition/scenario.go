package composition

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Inputs is everything needed to replay a projection.
type Inputs struct {
	Current Measurement `json:"current"`
	Goal    GoalSpec    `json:"goal"`
}

// Scenario is a named, saved set of what-if inputs.
type Scenario struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Inputs    Inputs    `json:"inputs"`
	CreatedAt time.Time `json:"created_at"`
}

// NewScenario creates a scenario. A blank name becomes "Scenario N" where N
// is one more than the number of scenarios already saved.
func NewScenario(name string, in Inputs, existing int, now time.Time) Scenario {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fmt.Sprintf("Scenario %d", existing+1)
	}
	return Scenario{
		ID:        uuid.NewString(),
		Name:      name,
		Inputs:    in,
		CreatedAt: now.UTC(),
	}
}

// Project replays the scenario.
func (s Scenario) Project() Projection {
	return Project(s.Inputs.Current, s.Inputs.Goal.Goal())
}
