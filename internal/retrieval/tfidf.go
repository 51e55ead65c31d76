// Package retrieval ranks corpus passages against a query using TF-IDF
// vectors and cosine similarity. The vector space is rebuilt on every
// invocation; there is no persistent index.
package retrieval

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorizer is a TF-IDF vectorizer over unigrams and bigrams with English
// stop-word removal, sublinear term-frequency scaling and document-frequency
// bounds.
type Vectorizer struct {
	// MinDF drops terms appearing in fewer than MinDF documents.
	MinDF int
	// MaxDF drops terms appearing in more than MaxDF (a fraction of the
	// corpus) documents.
	MaxDF float64

	vocabulary map[string]int
	idf        []float64
	prepared   bool

	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// NewVectorizer creates an unprepared vectorizer. minDF values below 1 and
// maxDF values outside (0, 1] fall back to 1 and 1.0.
func NewVectorizer(minDF int, maxDF float64) *Vectorizer {
	if minDF < 1 {
		minDF = 1
	}
	if maxDF <= 0 || maxDF > 1 {
		maxDF = 1
	}
	return &Vectorizer{
		MinDF:        minDF,
		MaxDF:        maxDF,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Fit builds the vocabulary and IDF values from the provided texts.
func (v *Vectorizer) Fit(texts []string) error {
	if len(texts) == 0 {
		return errors.New("empty corpus for tf-idf fit")
	}

	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, term := range v.terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := len(texts)
	maxCount := int(math.Ceil(v.MaxDF * float64(n)))

	terms := make([]string, 0, len(df))
	for term, count := range df {
		if count < v.MinDF || count > maxCount {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return errors.New("no terms survived document-frequency bounds")
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+float64(n))/(1+float64(df[term]))) + 1
	}
	v.prepared = true
	return nil
}

// Transform computes the L2-normalized TF-IDF vector for the given text.
// Term frequency is scaled sublinearly (1 + ln tf).
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.prepared {
		return nil, errors.New("vectorizer is not fitted")
	}

	vec := make([]float64, len(v.idf))
	tf := make(map[int]int)
	for _, term := range v.terms(text) {
		if idx, ok := v.vocabulary[term]; ok {
			tf[idx]++
		}
	}
	if len(tf) == 0 {
		return vec, nil
	}

	for idx, count := range tf {
		vec[idx] = (1 + math.Log(float64(count))) * v.idf[idx]
	}

	norm := 0.0
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// terms tokenizes the text into stop-word-filtered unigrams plus bigrams of
// adjacent surviving tokens.
func (v *Vectorizer) terms(text string) []string {
	tokens := v.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return nil
	}

	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := v.stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}

	terms := make([]string, 0, 2*len(kept))
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "this", "that", "these", "those",
		"from", "up", "down", "over", "under", "again", "further", "than",
		"so", "such", "into", "about", "between", "through", "during",
		"before", "after", "above", "below", "out", "off", "own", "same",
		"too", "very", "can", "will", "just", "should", "now", "you", "your",
		"we", "our", "they", "their", "he", "she", "his", "her", "i", "me",
		"my", "do", "does", "did", "have", "has", "had", "not", "no",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
