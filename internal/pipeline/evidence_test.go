package pipeline

import (
	"strings"
	"testing"

	"jobscreen/internal/corpus"
	"jobscreen/internal/retrieval"
)

func testPassages() []corpus.Passage {
	return []corpus.Passage{
		{Text: "red flag checklist content", SourceID: "redflags.txt#chunk0", Tag: corpus.Risk},
		{Text: "green flag checklist content", SourceID: "greenflags.txt#chunk0", Tag: corpus.Legitimacy},
		{Text: "a known fake posting", SourceID: "fake_job_exemplars.txt#chunk0", Tag: corpus.FakeExemplar},
		{Text: "a known real posting", SourceID: "real_job_exemplars.txt#chunk0", Tag: corpus.RealExemplar},
		{Text: "industry study content", SourceID: "study.txt#chunk0", Tag: corpus.Other},
	}
}

func TestSelectEvidenceForcesChecklists(t *testing.T) {
	passages := testPassages()
	// Top-k contains only exemplars: the checklists did not rank.
	results := []retrieval.Result{
		{Passage: passages[2], Index: 2, Score: 0.9},
		{Passage: passages[3], Index: 3, Score: 0.8},
	}

	evidence := selectEvidence(passages, results, 1)
	if len(evidence) != 4 {
		t.Fatalf("expected 2 ranked + 2 forced passages, got %d", len(evidence))
	}
	if evidence[0].Passage.SourceID != "fake_job_exemplars.txt#chunk0" || evidence[0].Forced {
		t.Fatalf("ranked evidence must come first: %+v", evidence[0])
	}

	var forcedRisk, forcedLegit bool
	for _, ev := range evidence {
		if !ev.Forced {
			continue
		}
		switch ev.Passage.Tag {
		case corpus.Risk:
			forcedRisk = true
		case corpus.Legitimacy:
			forcedLegit = true
		}
	}
	if !forcedRisk || !forcedLegit {
		t.Fatalf("expected forced risk and legitimacy passages, got %+v", evidence)
	}
}

func TestSelectEvidenceNoDuplicateForced(t *testing.T) {
	passages := testPassages()
	results := []retrieval.Result{
		{Passage: passages[0], Index: 0, Score: 0.9},
		{Passage: passages[1], Index: 1, Score: 0.8},
	}

	evidence := selectEvidence(passages, results, 1)
	if len(evidence) != 2 {
		t.Fatalf("checklists already ranked; expected no forced additions, got %d", len(evidence))
	}
}

func TestSelectEvidenceZeroForced(t *testing.T) {
	passages := testPassages()
	results := []retrieval.Result{{Passage: passages[4], Index: 4, Score: 0.5}}

	evidence := selectEvidence(passages, results, 0)
	if len(evidence) != 1 {
		t.Fatalf("expected only ranked evidence, got %d", len(evidence))
	}
}

func TestBiasDirection(t *testing.T) {
	passages := testPassages()

	riskHeavy := []Evidence{
		{Passage: passages[0]}, {Passage: passages[2]}, {Passage: passages[4]},
	}
	if got := bias(riskHeavy, 1); got <= 0 {
		t.Fatalf("expected positive bias, got %f", got)
	}

	legitHeavy := []Evidence{
		{Passage: passages[1]}, {Passage: passages[3]},
	}
	if got := bias(legitHeavy, 1); got >= 0 {
		t.Fatalf("expected negative bias, got %f", got)
	}

	balanced := []Evidence{
		{Passage: passages[0]}, {Passage: passages[1]},
	}
	if got := bias(balanced, 2.5); got != 0 {
		t.Fatalf("expected zero bias, got %f", got)
	}
}

func TestBuildPromptGuidanceCounts(t *testing.T) {
	passages := testPassages()
	evidence := []Evidence{
		{Passage: passages[0]}, {Passage: passages[2]}, {Passage: passages[1]},
	}

	prompt := buildPrompt(evidence, 1, "the posting text", 3000)
	if !strings.Contains(prompt, "2 risk-leaning vs 1 legitimacy-leaning") {
		t.Fatalf("guidance counts missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "leans risky") {
		t.Fatalf("bias direction missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "[risk] [redflags.txt#chunk0]") {
		t.Fatalf("category prefix missing:\n%s", prompt)
	}
	if !strings.Contains(prompt, "the posting text") {
		t.Fatalf("query missing:\n%s", prompt)
	}
}

func TestBuildPromptBudgetDropsLowestRanked(t *testing.T) {
	long := strings.Repeat("word ", 100)
	evidence := []Evidence{
		{Passage: corpus.Passage{Text: long, SourceID: "first.txt#chunk0", Tag: corpus.Other}},
		{Passage: corpus.Passage{Text: long, SourceID: "second.txt#chunk0", Tag: corpus.Other}},
		{Passage: corpus.Passage{Text: "forced checklist line", SourceID: "redflags.txt#chunk0", Tag: corpus.Risk}, Forced: true},
	}

	// Budget fits the first passage only; the forced passage must still
	// make it in.
	prompt := buildPrompt(evidence, 0, "query", 540)
	if !strings.Contains(prompt, "first.txt#chunk0") {
		t.Fatalf("highest ranked passage missing:\n%s", prompt)
	}
	if strings.Contains(prompt, "second.txt#chunk0") {
		t.Fatalf("over-budget passage not dropped:\n%s", prompt)
	}
	if !strings.Contains(prompt, "redflags.txt#chunk0") {
		t.Fatalf("forced passage must survive the budget:\n%s", prompt)
	}
}

func TestBuildPromptEmptyEvidence(t *testing.T) {
	prompt := buildPrompt(nil, 0, "query text", 3000)
	if !strings.Contains(prompt, "(no relevant passages retrieved)") {
		t.Fatalf("expected placeholder context:\n%s", prompt)
	}
	if !strings.Contains(prompt, "leans neither way") {
		t.Fatalf("expected neutral guidance:\n%s", prompt)
	}
}
