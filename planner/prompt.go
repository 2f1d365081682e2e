package planner

import (
	"fmt"
	"strings"
)

// PromptInput carries the form fields the prompt is built from. Optional
// fields left blank get fixed placeholder text so the prompt is deterministic
// for a given input.
type PromptInput struct {
	Title       string
	Goal        string
	Users       string
	Constraints string
	Type        string
}

// BuildPrompt produces the single user message sent to the model.
func BuildPrompt(in PromptInput) string {
	users := in.Users
	if users == "" {
		users = "Not specified"
	}
	constraints := in.Constraints
	if constraints == "" {
		constraints = "None"
	}
	typ := in.Type
	if typ == "" {
		typ = "General"
	}

	var sb strings.Builder
	sb.WriteString("You are a senior product engineer.\n\n")
	sb.WriteString("Return ONLY valid JSON. No markdown. No explanations.\n\n")
	sb.WriteString("Format exactly like this:\n\n")
	sb.WriteString(`{
  "userStories": ["..."],
  "engineeringTasks": {
    "frontend": ["..."],
    "backend": ["..."],
    "database": ["..."],
    "devops": ["..."]
  },
  "risks": ["..."],
  "milestones": ["..."]
}`)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Feature Title: %s\n", in.Title)
	fmt.Fprintf(&sb, "Goal: %s\n", in.Goal)
	fmt.Fprintf(&sb, "Users: %s\n", users)
	fmt.Fprintf(&sb, "Constraints: %s\n", constraints)
	fmt.Fprintf(&sb, "Type: %s\n", typ)
	sb.WriteString("\nRules:\n")
	sb.WriteString("- Be realistic.\n")
	sb.WriteString("- Use practical engineering tasks.\n")
	sb.WriteString("- Milestones must be in days or weeks.\n")
	sb.WriteString("- Return only valid JSON.\n")
	return sb.String()
}
