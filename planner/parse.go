package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrParse marks completions that could not be turned into a PlanDocument.
var ErrParse = errors.New("invalid plan output")

// planEnvelope mirrors PlanDocument with pointer fields so a missing key is
// distinguishable from a present-but-empty one.
type planEnvelope struct {
	UserStories      *[]string `json:"userStories"`
	EngineeringTasks *struct {
		Frontend *[]string `json:"frontend"`
		Backend  *[]string `json:"backend"`
		Database *[]string `json:"database"`
		DevOps   *[]string `json:"devops"`
	} `json:"engineeringTasks"`
	Risks      *[]string `json:"risks"`
	Milestones *[]string `json:"milestones"`
}

// ParsePlan strips markdown code-fence artifacts from a raw completion and
// decodes the remainder as a PlanDocument. Models get told to return bare
// JSON and wrap it in ```json fences anyway, so the fences are removed
// wherever they occur before decoding.
//
// The shape is checked here, at the boundary: a syntactically valid document
// missing any of the six required fields is rejected rather than left to blow
// up at render time. Present-but-empty sequences are fine.
func ParsePlan(raw string) (PlanDocument, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var env planEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return PlanDocument{}, fmt.Errorf("%w: %v", ErrParse, err)
	}

	switch {
	case env.UserStories == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing userStories", ErrParse)
	case env.EngineeringTasks == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing engineeringTasks", ErrParse)
	case env.EngineeringTasks.Frontend == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing engineeringTasks.frontend", ErrParse)
	case env.EngineeringTasks.Backend == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing engineeringTasks.backend", ErrParse)
	case env.EngineeringTasks.Database == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing engineeringTasks.database", ErrParse)
	case env.EngineeringTasks.DevOps == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing engineeringTasks.devops", ErrParse)
	case env.Risks == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing risks", ErrParse)
	case env.Milestones == nil:
		return PlanDocument{}, fmt.Errorf("%w: missing milestones", ErrParse)
	}

	return PlanDocument{
		UserStories: *env.UserStories,
		EngineeringTasks: EngineeringTasks{
			Frontend: *env.EngineeringTasks.Frontend,
			Backend:  *env.EngineeringTasks.Backend,
			Database: *env.EngineeringTasks.Database,
			DevOps:   *env.EngineeringTasks.DevOps,
		},
		Risks:      *env.Risks,
		Milestones: *env.Milestones,
	}, nil
}
