package pipeline

import (
	"fmt"
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

// buildPrompt assembles the instruction block: a guidance hint describing
// the evidence balance, category-tagged passages under a total character
// budget and the posting itself. Lowest-ranked non-forced evidence is
// dropped first when over budget; forced checklist passages always stay.
func buildPrompt(evidence []Evidence, netBias float64, query string, maxContextChars int) string {
	risk, legit := leanCounts(evidence)

	guidance := fmt.Sprintf(
		"Retrieved evidence: %d risk-leaning vs %d legitimacy-leaning passage(s); net signal leans %s.",
		risk, legit, leanWord(netBias),
	)

	context := renderContext(evidence, maxContextChars)
	if context == "" {
		context = "(no relevant passages retrieved)"
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{GUIDANCE}}", guidance)
	prompt = strings.ReplaceAll(prompt, "{{CONTEXT}}", context)
	prompt = strings.ReplaceAll(prompt, "{{JOB_TEXT}}", query)
	return strings.TrimSpace(prompt)
}

func leanWord(netBias float64) string {
	switch {
	case netBias > 0:
		return "risky"
	case netBias < 0:
		return "legitimate"
	default:
		return "neither way"
	}
}

func renderContext(evidence []Evidence, maxContextChars int) string {
	var blocks []string
	used := 0

	for _, ev := range evidence {
		block := fmt.Sprintf("[%s] [%s]\n%s", ev.Passage.Tag, ev.Passage.SourceID, ev.Passage.Text)
		cost := len(block)
		if len(blocks) > 0 {
			cost += len("\n\n")
		}

		// Forced checklist passages stay even over budget.
		if maxContextChars > 0 && used+cost > maxContextChars && !ev.Forced {
			continue
		}

		blocks = append(blocks, block)
		used += cost
	}

	return strings.Join(blocks, "\n\n")
}
