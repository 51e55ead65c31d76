package retrieval

import (
	"fmt"
	"sort"

	"jobscreen/internal/corpus"
)

// Result pairs a corpus passage with its similarity to the query.
type Result struct {
	Passage corpus.Passage
	Index   int
	Score   float64
}

// Retrieve vectorizes the passage texts together with the query, computes
// cosine similarity between the query and every passage and returns the
// topK best matches in descending score order. Ties keep corpus order. An
// empty corpus returns an empty result without touching the vectorizer.
func Retrieve(passages []corpus.Passage, query string, topK int, minDF int, maxDF float64) ([]Result, error) {
	if len(passages) == 0 || topK <= 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(passages)+1)
	for _, p := range passages {
		texts = append(texts, p.Text)
	}
	texts = append(texts, query)

	vectorizer := NewVectorizer(minDF, maxDF)
	if err := vectorizer.Fit(texts); err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	queryVec, err := vectorizer.Transform(query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	results := make([]Result, 0, len(passages))
	for i, p := range passages {
		vec, err := vectorizer.Transform(p.Text)
		if err != nil {
			return nil, fmt.Errorf("vectorize passage %s: %w", p.SourceID, err)
		}
		results = append(results, Result{Passage: p, Index: i, Score: dot(queryVec, vec)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// dot assumes both vectors are L2-normalized, so the product is the cosine.
func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
