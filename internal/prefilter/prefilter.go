// Package prefilter runs cheap deterministic pattern checks against a job
// posting before any retrieval or model call. A match short-circuits the
// whole pipeline: obvious scams should not pay for a vector search or a
// generation round-trip.
package prefilter

import (
	"fmt"
	"regexp"

	"jobscreen/internal/verdict"
)

// Rule is a single high-confidence fraud indicator.
type Rule struct {
	Code    string
	Summary string
	pattern *regexp.Regexp
}

// rules is the fixed indicator table. Patterns are deliberately narrow:
// a prefilter false positive cannot be walked back downstream.
var rules = []Rule{
	{
		Code:    "OFF_PLATFORM_CONTACT",
		Summary: "moves contact to an unmonitored channel",
		pattern: regexp.MustCompile(`(?i)\b(?:contact|reach|message|text|dm|chat)\b[^.\n]{0,40}\b(?:telegram|whatsapp|signal|wechat|kik)\b|\bvia\s+(?:telegram|whatsapp|signal|wechat|kik)\b`),
	},
	{
		Code:    "UPFRONT_FEE",
		Summary: "requests payment before employment",
		pattern: regexp.MustCompile(`(?i)\b(?:pay|send|deposit|transfer)\b[^.\n]{0,50}\b(?:fee|fees|training|equipment|starter\s*kit|registration)\b`),
	},
	{
		Code:    "SENSITIVE_DATA",
		Summary: "asks for identity or banking data up front",
		pattern: regexp.MustCompile(`(?i)\b(?:ssn|social\s+security|bank\s+account|routing\s+number|passport\s+scan|driver'?s\s+licen[cs]e\s+(?:copy|scan|photo))\b`),
	},
	{
		Code:    "TOO_GOOD_PAY",
		Summary: "unrealistic pay with no experience required",
		pattern: regexp.MustCompile(`(?i)\$\s?\d{3,}[^.\n]{0,60}\b(?:per\s+(?:day|hour)|daily|hourly)\b[^.\n]{0,80}\bno\s+(?:experience|skills?|interview)\b|\bno\s+(?:experience|skills?|interview)\b[^.\n]{0,80}\$\s?\d{3,}[^.\n]{0,40}\b(?:per\s+(?:day|hour)|daily|hourly)\b`),
	},
	{
		Code:    "ARTIFICIAL_URGENCY",
		Summary: "pressure to commit immediately",
		pattern: regexp.MustCompile(`(?i)\b(?:hired\s+today|start\s+(?:today|immediately)[^.\n]{0,30}\bno\s+interview|only\s+\d+\s+(?:spots?|positions?)\s+left|apply\s+(?:now|today)\s+or\s+(?:miss|lose))\b`),
	},
}

// Check applies every rule to the normalized posting text. When one or more
// rules match it returns an immediate Fake verdict citing the matched rule
// codes; otherwise it returns nil and the pipeline proceeds.
func Check(query string) *verdict.Verdict {
	var reasons []string
	for _, rule := range rules {
		if !rule.pattern.MatchString(query) {
			continue
		}
		reasons = append(reasons, fmt.Sprintf("rule %s: %s", rule.Code, rule.Summary))
		if len(reasons) == verdict.MaxReasons {
			break
		}
	}
	if len(reasons) == 0 {
		return nil
	}
	return verdict.New(verdict.Fake, reasons...)
}

// Rules exposes the rule table for status reporting.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
