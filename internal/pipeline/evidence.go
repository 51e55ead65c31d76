package pipeline

import (
	"jobscreen/internal/corpus"
	"jobscreen/internal/retrieval"
)

// Evidence is a passage selected for the prompt, in rank order. Forced
// entries come from the checklist guarantee and survive budget truncation.
type Evidence struct {
	Passage corpus.Passage
	Score   float64
	Forced  bool
}

// selectEvidence turns retrieval results into the prompt evidence set. Up to
// forcedPerChecklist passages each from risk and legitimacy checklist
// documents are appended when the top-k missed them, so exemplar passages
// that happen to score higher cannot starve the checklist criteria out of
// the prompt.
func selectEvidence(passages []corpus.Passage, results []retrieval.Result, forcedPerChecklist int) []Evidence {
	evidence := make([]Evidence, 0, len(results)+2*forcedPerChecklist)
	seen := make(map[string]struct{}, len(results))

	riskSeen, legitSeen := 0, 0
	for _, res := range results {
		evidence = append(evidence, Evidence{Passage: res.Passage, Score: res.Score})
		seen[res.Passage.SourceID] = struct{}{}
		switch res.Passage.Tag {
		case corpus.Risk:
			riskSeen++
		case corpus.Legitimacy:
			legitSeen++
		}
	}

	evidence = appendForced(evidence, passages, seen, corpus.Risk, forcedPerChecklist-riskSeen)
	evidence = appendForced(evidence, passages, seen, corpus.Legitimacy, forcedPerChecklist-legitSeen)
	return evidence
}

// appendForced adds up to n corpus-order passages of the given category that
// are not already selected.
func appendForced(evidence []Evidence, passages []corpus.Passage, seen map[string]struct{}, tag corpus.Category, n int) []Evidence {
	for _, p := range passages {
		if n <= 0 {
			break
		}
		if p.Tag != tag {
			continue
		}
		if _, ok := seen[p.SourceID]; ok {
			continue
		}
		evidence = append(evidence, Evidence{Passage: p, Forced: true})
		seen[p.SourceID] = struct{}{}
		n--
	}
	return evidence
}

// bias sums the directional weights of the evidence set. Positive values
// lean toward Fake, negative toward Real.
func bias(evidence []Evidence, weight float64) float64 {
	total := 0.0
	for _, ev := range evidence {
		total += corpus.BiasWeight(ev.Passage.Tag) * weight
	}
	return total
}

// leanCounts reports how many evidence passages lean toward risk and how
// many toward legitimacy, for the prompt guidance line.
func leanCounts(evidence []Evidence) (risk, legit int) {
	for _, ev := range evidence {
		switch ev.Passage.Tag {
		case corpus.Risk, corpus.FakeExemplar:
			risk++
		case corpus.Legitimacy, corpus.RealExemplar:
			legit++
		}
	}
	return risk, legit
}
