package planner

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() PlanDocument {
	return PlanDocument{
		UserStories: []string{"As a user I can log in"},
		EngineeringTasks: EngineeringTasks{
			Frontend: []string{"Build login form"},
			Backend:  []string{"Add auth endpoint"},
			Database: []string{"Create users table"},
			DevOps:   []string{},
		},
		Risks:      []string{"Password reuse"},
		Milestones: []string{"1 week"},
	}
}

func TestParsePlanRoundTrip(t *testing.T) {
	doc := samplePlan()
	serialized, err := json.Marshal(doc)
	require.NoError(t, err)

	parsed, err := ParsePlan(string(serialized))
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)
}

func TestParsePlanStripsFences(t *testing.T) {
	doc := samplePlan()
	serialized, err := json.Marshal(doc)
	require.NoError(t, err)

	bare, err := ParsePlan(string(serialized))
	require.NoError(t, err)

	fenced, err := ParsePlan("```json\n" + string(serialized) + "\n```")
	require.NoError(t, err)
	assert.Equal(t, bare, fenced, "fenced and bare input must parse identically")

	// Fences without the json language tag.
	plain, err := ParsePlan("```\n" + string(serialized) + "\n```")
	require.NoError(t, err)
	assert.Equal(t, bare, plain)
}

func TestParsePlanRejectsNonJSON(t *testing.T) {
	_, err := ParsePlan("Sure! Here is your plan: do the frontend first.")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestParsePlanRejectsMissingFields(t *testing.T) {
	cases := map[string]string{
		"no userStories":    `{"engineeringTasks":{"frontend":[],"backend":[],"database":[],"devops":[]},"risks":[],"milestones":[]}`,
		"no tasks":          `{"userStories":[],"risks":[],"milestones":[]}`,
		"no devops":         `{"userStories":[],"engineeringTasks":{"frontend":[],"backend":[],"database":[]},"risks":[],"milestones":[]}`,
		"no risks":          `{"userStories":[],"engineeringTasks":{"frontend":[],"backend":[],"database":[],"devops":[]},"milestones":[]}`,
		"no milestones":     `{"userStories":[],"engineeringTasks":{"frontend":[],"backend":[],"database":[],"devops":[]},"risks":[]}`,
		"not even an object": `[1, 2, 3]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePlan(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))
		})
	}
}

func TestParsePlanAcceptsEmptySequences(t *testing.T) {
	doc, err := ParsePlan(`{"userStories":[],"engineeringTasks":{"frontend":[],"backend":[],"database":[],"devops":[]},"risks":[],"milestones":[]}`)
	require.NoError(t, err)
	assert.Empty(t, doc.UserStories)
	assert.Empty(t, doc.Milestones)
}
