// Package match ranks internship postings for a parsed resume. It combines
// text similarity with the rule engine score and affirmative-action weightage
// into a single allocation score per posting.
package match

import (
	"math"
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z0-9+#.]+`)

// stopwords excluded from similarity vectors. A short list is enough for
// resume/posting text.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "of": {},
	"on": {}, "or": {}, "the": {}, "to": {}, "with": {}, "we": {}, "you": {},
	"will": {}, "our": {}, "your": {},
}

func tokenize(text string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.Trim(tok, ".")
		if tok == "" {
			continue
		}
		if _, skip := stopwords[tok]; skip {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func termFreqs(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	for tok := range tf {
		tf[tok] /= float64(len(tokens))
	}
	return tf
}

// Vectorizer holds inverse document frequencies learned from a corpus so that
// common filler terms contribute little to similarity.
type Vectorizer struct {
	idf map[string]float64
	n   int
}

// NewVectorizer fits IDF weights on the given documents.
func NewVectorizer(docs []string) *Vectorizer {
	df := make(map[string]float64)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			seen[tok] = struct{}{}
		}
		for tok := range seen {
			df[tok]++
		}
	}

	v := &Vectorizer{idf: make(map[string]float64, len(df)), n: len(docs)}
	for tok, count := range df {
		// smoothed IDF, never zero
		v.idf[tok] = math.Log(float64(v.n+1)/(count+1)) + 1
	}
	return v
}

// Vector maps a document to its TF-IDF representation. Terms unseen during
// fitting get the maximum IDF.
func (v *Vectorizer) Vector(doc string) map[string]float64 {
	unseen := math.Log(float64(v.n+1)) + 1
	vec := termFreqs(tokenize(doc))
	for tok := range vec {
		idf, ok := v.idf[tok]
		if !ok {
			idf = unseen
		}
		vec[tok] *= idf
	}
	return vec
}

// Cosine returns the cosine similarity of two sparse vectors, in [0, 1].
func Cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for tok, av := range a {
		normA += av * av
		if bv, ok := b[tok]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Similarity fits a throwaway vectorizer over the two documents and returns
// their cosine similarity. Useful for one-off comparisons.
func Similarity(a, b string) float64 {
	v := NewVectorizer([]string{a, b})
	return Cosine(v.Vector(a), v.Vector(b))
}
