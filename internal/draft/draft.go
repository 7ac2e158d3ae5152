// Package draft turns raw research material into a LinkedIn post draft.
// The draft is a deliberate template, not generated prose: it gives the
// user a structured starting point they are expected to edit.
package draft

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// ErrEmptyTopic rejects drafts without a topic.
var ErrEmptyTopic = errors.New("draft topic must not be empty")

// maxSummaryLen bounds how much research material is quoted verbatim.
const maxSummaryLen = 500

var postTemplate = template.Must(template.New("post").Parse(
	`🚀 Exciting developments in {{.Topic}}!

Based on recent research, I've discovered some fascinating insights that are worth sharing:

{{.Summary}}

💡 Key Takeaway: The landscape of {{.Topic}} is evolving rapidly, and staying informed is crucial for professionals in this space.

🤔 What's your experience with {{.Topic}}? Have you noticed similar trends in your industry?

#LinkedIn #ProfessionalDevelopment #{{.Hashtag}} #Innovation #Technology`))

// Build renders a post draft for the topic, quoting a truncated slice of
// the research corpus. Empty research is fine; the template still stands.
func Build(topic, research string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", ErrEmptyTopic
	}

	summary := strings.TrimSpace(research)
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen] + "..."
	}

	data := struct {
		Topic   string
		Summary string
		Hashtag string
	}{
		Topic:   topic,
		Summary: summary,
		Hashtag: strings.ReplaceAll(topic, " ", ""),
	}

	var sb strings.Builder
	if err := postTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering draft: %w", err)
	}
	return sb.String(), nil
}
