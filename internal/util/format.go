package util

import (
	"fmt"
	"strings"
)

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// OrDash returns "—" for blank values.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// JoinTags formats tags as "a · b · c", or "—" when there are none.
func JoinTags(tags []string) string {
	if len(tags) == 0 {
		return "—"
	}
	return strings.Join(tags, " · ")
}

// Plural formats a count with its noun: "1 recipe", "3 recipes".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// CountLabel formats a filtered count as "shown/total".
func CountLabel(shown, total int) string {
	return fmt.Sprintf("%d/%d", shown, total)
}
