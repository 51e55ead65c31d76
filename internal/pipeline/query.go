package pipeline

import (
	"regexp"
	"strings"
)

var (
	urlRe        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailRe      = regexp.MustCompile(`\S+@\S+\.\S+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeQuery prepares raw job-posting text for retrieval and prompting:
// URLs and e-mail addresses are stripped, whitespace collapsed and the
// result truncated to maxChars.
func NormalizeQuery(raw string, maxChars int) string {
	s := urlRe.ReplaceAllString(raw, " ")
	s = emailRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
	if maxChars > 0 && len(s) > maxChars {
		s = s[:maxChars]
	}
	return s
}
