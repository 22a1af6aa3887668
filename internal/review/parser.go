package review

import (
	"regexp"
	"strconv"
	"strings"
)

// Defaults used when the classifier output omits a section.
const (
	DefaultFeedback = "No feedback provided"
	DefaultIssues   = "No issues found"
)

var (
	excellentPattern = regexp.MustCompile(`(?i)EXCELLENT_LINES:\s*(\d+)`)
	okPattern        = regexp.MustCompile(`(?i)OK_LINES:\s*(\d+)`)
	badPattern       = regexp.MustCompile(`(?i)BAD_LINES:\s*(\d+)`)
	feedbackPattern  = regexp.MustCompile(`(?is)FEEDBACK:\s*(.*?)(?:ISSUES:|\z)`)
	issuesPattern    = regexp.MustCompile(`(?is)ISSUES:\s*(.*)\z`)
)

// Analysis holds the structured content extracted from the classifier's
// free-text review.
type Analysis struct {
	Excellent int
	OK        int
	Bad       int
	Feedback  string
	Issues    string
}

// ParseAnalysis extracts tier counts and the feedback/issues sections from
// the classifier output. The model is instructed to emit labeled fields but
// nothing guarantees it does; any label that cannot be found falls back to
// a default instead of failing the request.
func ParseAnalysis(raw string) Analysis {
	return Analysis{
		Excellent: matchCount(excellentPattern, raw),
		OK:        matchCount(okPattern, raw),
		Bad:       matchCount(badPattern, raw),
		Feedback:  matchSection(feedbackPattern, raw, DefaultFeedback),
		Issues:    matchSection(issuesPattern, raw, DefaultIssues),
	}
}

func matchCount(pattern *regexp.Regexp, raw string) int {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return 0
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}

	return value
}

func matchSection(pattern *regexp.Regexp, raw, fallback string) string {
	match := pattern.FindStringSubmatch(raw)
	if match == nil {
		return fallback
	}

	section := strings.TrimSpace(match[1])
	if section == "" {
		return fallback
	}

	return section
}
