// Package planner owns the plan document shape, the prompt sent to the model,
// and the parsing of what comes back.
package planner

// EngineeringTasks groups the plan's tasks by discipline.
type EngineeringTasks struct {
	Frontend []string `json:"frontend"`
	Backend  []string `json:"backend"`
	Database []string `json:"database"`
	DevOps   []string `json:"devops"`
}

// PlanDocument is the fixed shape the model is instructed to return.
type PlanDocument struct {
	UserStories      []string         `json:"userStories"`
	EngineeringTasks EngineeringTasks `json:"engineeringTasks"`
	Risks            []string         `json:"risks"`
	Milestones       []string         `json:"milestones"`
}
