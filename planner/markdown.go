package planner

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// FormatMarkdown renders a plan as the markdown text shown in the editor:
// one section per plan field, `- ` bullets, disciplines as subsections.
func FormatMarkdown(doc PlanDocument) string {
	var sb strings.Builder
	writeSection(&sb, "# User Stories", doc.UserStories)
	sb.WriteString("\n# Engineering Tasks\n")
	writeSection(&sb, "\n## Frontend", doc.EngineeringTasks.Frontend)
	writeSection(&sb, "\n## Backend", doc.EngineeringTasks.Backend)
	writeSection(&sb, "\n## Database", doc.EngineeringTasks.Database)
	writeSection(&sb, "\n## DevOps", doc.EngineeringTasks.DevOps)
	writeSection(&sb, "\n# Risks and Unknowns", doc.Risks)
	writeSection(&sb, "\n# Milestones", doc.Milestones)
	return sb.String()
}

func writeSection(sb *strings.Builder, heading string, items []string) {
	sb.WriteString(heading)
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}

// MarkdownToHTML converts markdown to HTML for the server-side preview.
func MarkdownToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
