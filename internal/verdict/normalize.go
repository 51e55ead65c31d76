package verdict

import (
	"regexp"
	"strings"
)

// Normalizer turns arbitrary model output into a well-formed Verdict. It
// never fails: when no verdict line is found and the word-scan fallback is
// ambiguous, the configured fallback label is used.
type Normalizer struct {
	// Fallback is used when the output carries no recognizable label.
	// Uncertain by default; the strict pipeline variant sets Fake.
	Fallback Label
}

var (
	markupRe  = regexp.MustCompile(`\*\*|__`)
	htmlTagRe = regexp.MustCompile(`</?[^>]+>`)
	spacesRe  = regexp.MustCompile(`[ \t]+`)
	verdictRe = regexp.MustCompile(`(?im)^\s*verdict:\s*(real|fake|uncertain)\b`)
	reasonsRe = regexp.MustCompile(`(?i)^\s*reasons?:\s*$`)
	bulletRe  = regexp.MustCompile(`^\s*[-*•]\s*(.+)$`)
	wordRe    = regexp.MustCompile(`[a-z]+`)
)

// NewNormalizer returns a normalizer with the given fallback label. An empty
// label defaults to Uncertain.
func NewNormalizer(fallback Label) *Normalizer {
	if fallback == "" {
		fallback = Uncertain
	}
	return &Normalizer{Fallback: fallback}
}

// Normalize parses raw generation output into a Verdict. Markup noise is
// stripped first; the label comes from an anchored "Verdict:" line, falling
// back to a whole-word scan for fake/real when absent. Reasons come from
// bullet lines after a "Reasons:" header, else are synthesized from the
// first non-verdict lines of the output.
func (n *Normalizer) Normalize(raw string) *Verdict {
	cleaned := strip(raw)

	label := n.parseLabel(cleaned)
	reasons := parseReasons(cleaned)
	if len(reasons) == 0 {
		reasons = synthesizeReasons(cleaned)
	}

	return New(label, reasons...)
}

func (n *Normalizer) parseLabel(cleaned string) Label {
	if m := verdictRe.FindStringSubmatch(cleaned); m != nil {
		label, _ := ParseLabel(m[1])
		return label
	}

	// Word scan: commit only when exactly one of fake/real appears.
	var sawFake, sawReal bool
	for _, w := range wordRe.FindAllString(strings.ToLower(cleaned), -1) {
		switch w {
		case "fake":
			sawFake = true
		case "real":
			sawReal = true
		}
	}
	switch {
	case sawFake && !sawReal:
		return Fake
	case sawReal && !sawFake:
		return Real
	default:
		return n.Fallback
	}
}

func strip(raw string) string {
	s := strings.TrimSpace(raw)
	s = markupRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	return spacesRe.ReplaceAllString(s, " ")
}

func parseReasons(cleaned string) []string {
	var reasons []string
	inReasons := false
	for _, line := range strings.Split(cleaned, "\n") {
		if reasonsRe.MatchString(line) {
			inReasons = true
			continue
		}
		if !inReasons {
			continue
		}
		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			break
		}
		reason := strings.TrimSpace(m[1])
		if reason == "" {
			continue
		}
		reasons = append(reasons, reason)
		if len(reasons) == MaxReasons {
			break
		}
	}
	return reasons
}

const maxSynthesizedReasonLen = 120

// synthesizeReasons falls back to the first few informative lines when the
// model ignored the Reasons section of the format contract.
func synthesizeReasons(cleaned string) []string {
	var reasons []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || verdictRe.MatchString(line) || reasonsRe.MatchString(line) {
			continue
		}
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			line = strings.TrimSpace(m[1])
		}
		if len(line) > maxSynthesizedReasonLen {
			line = line[:maxSynthesizedReasonLen]
		}
		reasons = append(reasons, line)
		if len(reasons) == MaxReasons {
			break
		}
	}
	return reasons
}
