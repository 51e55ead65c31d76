package corpus

import "strings"

// Category is the semantic role of a passage's source document.
type Category string

const (
	// Risk marks red-flag checklist and rule documents.
	Risk Category = "risk"
	// Legitimacy marks green-flag checklist documents.
	Legitimacy Category = "legitimacy"
	// FakeExemplar marks labeled examples of fraudulent postings.
	FakeExemplar Category = "fake-exemplar"
	// RealExemplar marks labeled examples of genuine postings.
	RealExemplar Category = "real-exemplar"
	// Other is everything else (playbooks, studies, resources).
	Other Category = "other"
)

// tagTable maps filename substrings to categories. Checked in order so more
// specific patterns win over generic ones.
var tagTable = []struct {
	substr   string
	category Category
}{
	{"fake_job", FakeExemplar},
	{"fake-job", FakeExemplar},
	{"real_job", RealExemplar},
	{"real-job", RealExemplar},
	{"redflag", Risk},
	{"red_flag", Risk},
	{"red-flag", Risk},
	{"greenflag", Legitimacy},
	{"green_flag", Legitimacy},
	{"green-flag", Legitimacy},
	{"scam", Risk},
	{"fraud", Risk},
	{"legit", Legitimacy},
}

// Tag classifies a source document by filename. Unknown names map to Other;
// the function is total and pure.
func Tag(sourceName string) Category {
	name := strings.ToLower(sourceName)
	for _, entry := range tagTable {
		if strings.Contains(name, entry.substr) {
			return entry.category
		}
	}
	return Other
}

// BiasWeight is the directional contribution of a single passage with the
// given category: positive pushes toward Fake, negative toward Real.
func BiasWeight(c Category) float64 {
	switch c {
	case Risk, FakeExemplar:
		return 1
	case Legitimacy, RealExemplar:
		return -1
	default:
		return 0
	}
}
