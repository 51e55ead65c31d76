package verdict

import "strings"

// Label is the canonical classification of a job posting.
type Label string

const (
	Real      Label = "Real"
	Fake      Label = "Fake"
	Uncertain Label = "Uncertain"
)

// MaxReasons caps the number of reason lines attached to a verdict.
const MaxReasons = 3

// Verdict is the sole output of the checking pipeline: one label and up to
// three short reason strings.
type Verdict struct {
	Label   Label
	Reasons []string
}

// New builds a verdict, trimming and capping reasons at MaxReasons.
func New(label Label, reasons ...string) *Verdict {
	v := &Verdict{Label: label}
	for _, reason := range reasons {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			continue
		}
		v.Reasons = append(v.Reasons, reason)
		if len(v.Reasons) == MaxReasons {
			break
		}
	}
	return v
}

// String renders the plain-text contract consumed by all callers:
//
//	Verdict: Real|Fake|Uncertain
//	Reasons:
//	- <reason>
func (v *Verdict) String() string {
	var b strings.Builder
	b.WriteString("Verdict: ")
	b.WriteString(string(v.Label))
	b.WriteString("\nReasons:")
	for _, reason := range v.Reasons {
		b.WriteString("\n- ")
		b.WriteString(reason)
	}
	return b.String()
}

// ParseLabel maps free-form text to a canonical label. The second return
// value reports whether the input named a known label.
func ParseLabel(s string) (Label, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "real":
		return Real, true
	case "fake":
		return Fake, true
	case "uncertain", "unknown":
		return Uncertain, true
	default:
		return Uncertain, false
	}
}
