package ai

import (
	"fmt"
	"strings"
)

const draftSystemPrompt = `You are a senior content writer for a visa consultancy website.
You write accurate, practical articles for people planning to move, work or
study abroad. Write in clear English, use markdown headings and lists, and
never invent fees, processing times or document requirements you are not
sure about. Do not include a top-level title heading; the title is rendered
separately.`

// buildDraftPrompt shapes the generation request for one planned topic.
func buildDraftPrompt(title, angle, keyword, countryName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a complete article draft titled %q.\n", title)
	if countryName != "" {
		fmt.Fprintf(&b, "The article targets readers interested in %s.\n", countryName)
	}
	if angle != "" {
		fmt.Fprintf(&b, "Editorial angle: %s.\n", angle)
	}
	if keyword != "" {
		fmt.Fprintf(&b, "Work the phrase %q naturally into headings and body text.\n", keyword)
	}
	b.WriteString("Aim for 800 to 1200 words. Return only the markdown body.")
	return b.String()
}
