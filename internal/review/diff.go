package review

import "strings"

// CountAddedLines reports how many lines the unified diff adds. A line
// counts when it starts with "+" but not with the "+++" file header marker.
// Removed lines, context lines, and hunk headers are ignored.
func CountAddedLines(diff string) int {
	count := 0
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			count++
		}
	}

	return count
}
