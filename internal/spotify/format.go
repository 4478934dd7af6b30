package spotify

import (
	"fmt"
	"strings"
)

// formatDuration renders a millisecond duration as m:ss, or h:mm:ss past
// the hour mark. Non-positive durations render as "".
func formatDuration(ms int) string {
	if ms <= 0 {
		return ""
	}
	totalSeconds := ms / 1000
	minutes, seconds := totalSeconds/60, totalSeconds%60
	hours, minutes := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// dedupeStrings trims, drops empties, and removes case-insensitive
// duplicates while preserving first-seen order.
func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		cleaned := strings.TrimSpace(v)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cleaned)
	}
	return out
}

// joinDeduped is dedupeStrings followed by a ", " join.
func joinDeduped(values []string) string {
	return strings.Join(dedupeStrings(values), ", ")
}
