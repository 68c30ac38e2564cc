// Package analysis computes corpus statistics: token frequencies, the
// dominant language, and the rendered report text. Everything here is a pure
// function of the corpus handed in; the corpus itself always lives in the
// document store.
package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Lllllllleong/docanalytics/internal/models"
)

// TopTermCount is how many ranked terms a report carries at most.
const TopTermCount = 10

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lower-cases the corpus and returns maximal runs of word
// characters (letters, digits, underscore). Punctuation and whitespace
// delimit tokens and never appear in them.
func Tokenize(corpus string) []string {
	return tokenPattern.FindAllString(strings.ToLower(corpus), -1)
}

// TopTerms returns the k most frequent tokens of corpus, most frequent
// first. Ties keep first-seen order, so the ranking is deterministic for a
// given corpus concatenation.
func TopTerms(corpus string, k int) []models.TermCount {
	tokens := Tokenize(corpus)
	if len(tokens) == 0 || k <= 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	terms := make([]models.TermCount, 0, len(order))
	for _, tok := range order {
		terms = append(terms, models.TermCount{Term: tok, Count: counts[tok]})
	}
	// Stable sort over a first-seen-ordered slice: equal counts stay in
	// encounter order.
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Count > terms[j].Count
	})

	if len(terms) > k {
		terms = terms[:k]
	}
	return terms
}

// Render produces the human-readable report delivered to subscribers. For a
// fixed report it is deterministic; only GeneratedAt varies between runs
// over an unchanged corpus.
func Render(report models.AnalysisReport) string {
	var b strings.Builder
	b.WriteString("Document Analysis Report\n")
	fmt.Fprintf(&b, "Generated At: %s\n", report.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Documents Scanned: %d\n", report.DocumentCount)
	fmt.Fprintf(&b, "Language: %s\n", report.Language)
	fmt.Fprintf(&b, "Top %d Words:\n", TopTermCount)
	for _, tc := range report.TopTerms {
		fmt.Fprintf(&b, "%s: %d\n", tc.Term, tc.Count)
	}
	return b.String()
}
