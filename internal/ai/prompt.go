package ai

import (
	"fmt"
	"strings"
)

// BuildSummaryPrompt formats the resume fields into the generation prompt.
func BuildSummaryPrompt(input SummaryInput) string {
	return fmt.Sprintf(`Create a globally optimized and ATS-friendly resume summary for:
Name: %s
Education: %s
Experience: %s
Skills: %s
Location: %s`,
		cleanInputText(input.Name),
		cleanInputText(input.Education),
		cleanInputText(input.Experience),
		cleanInputText(input.Skills),
		cleanInputText(input.Location),
	)
}

// cleanInputText normalizes a user-supplied field to a single line.
func cleanInputText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", " ")
	return text
}
