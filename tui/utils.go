package tui

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
