package mutate

import "strings"

const summaryMaxRunes = 120

// SummarizeText derives a one-line summary: the first line of the text,
// capped at 120 runes. Empty text gets a fixed placeholder.
func SummarizeText(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "No description yet."
	}
	line := trimmed
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		line = trimmed[:i]
	}
	runes := []rune(line)
	if len(runes) > summaryMaxRunes {
		return string(runes[:summaryMaxRunes])
	}
	return line
}

// AccentForTags maps tags to a fixed accent color token. Despite what the UI
// calls it, this is a deterministic lookup, not a random pick.
func AccentForTags(tags []string) string {
	for _, t := range tags {
		if strings.Contains(t, "Focus") {
			return "#c7d2fe"
		}
	}
	for _, t := range tags {
		if strings.Contains(t, "Sprint") {
			return "#fee2e2"
		}
	}
	return "#e0f2fe"
}
