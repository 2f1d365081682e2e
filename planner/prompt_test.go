package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptEmbedsAllFields(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Title:       "Login",
		Goal:        "Let users sign in",
		Users:       "End users",
		Constraints: "2 weeks",
		Type:        "Web App",
	})

	assert.Contains(t, prompt, "Feature Title: Login")
	assert.Contains(t, prompt, "Goal: Let users sign in")
	assert.Contains(t, prompt, "Users: End users")
	assert.Contains(t, prompt, "Constraints: 2 weeks")
	assert.Contains(t, prompt, "Type: Web App")
	assert.Contains(t, prompt, "Return ONLY valid JSON")
}

func TestBuildPromptPlaceholders(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Title: "Login", Goal: "Let users sign in"})

	assert.Contains(t, prompt, "Users: Not specified")
	assert.Contains(t, prompt, "Constraints: None")
	assert.Contains(t, prompt, "Type: General")
}

func TestBuildPromptDeterministic(t *testing.T) {
	in := PromptInput{Title: "Login", Goal: "Let users sign in"}
	assert.Equal(t, BuildPrompt(in), BuildPrompt(in))
}
