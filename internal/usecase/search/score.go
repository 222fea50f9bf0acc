package search

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/apunisarkar/sevamcp/internal/domain"
)

// wordSetBonus is added once when every query word appears in a field.
const wordSetBonus = 15

// Score computes how well a service matches the query, in [0, 100].
// The best per-field score wins; a word-set bonus is applied at most once.
func Score(query string, svc domain.Service) float64 {
	q := Normalize(query)

	fields := searchableFields(svc)
	if len(fields) == 0 {
		return 0.0
	}

	var maxScore float64
	for _, f := range fields {
		if s := fieldScore(q, f); s > maxScore {
			maxScore = s
		}
	}

	// Bonus if all query words appear in a single field, order-independent.
	// The scan stops at the first qualifying field.
	if words := tokenSet(q); len(words) > 0 {
		for _, f := range fields {
			if isSupersetOf(tokenSet(f), words) {
				maxScore = min(100, maxScore+wordSetBonus)
				break
			}
		}
	}

	return maxScore
}

// searchableFields collects the normalized fields to match against, in
// fixed order. Fields that normalize to empty are skipped, which also
// keeps the length-ratio term in fieldScore free of division by zero.
func searchableFields(svc domain.Service) []string {
	raw := []string{
		svc.NameEnglish,
		svc.NameHindi,
		svc.Slug,
		svc.ID,
	}
	if svc.Department != nil {
		raw = append(raw, svc.Department.NameEnglish, svc.Department.NameHindi)
	}

	fields := make([]string, 0, len(raw))
	for _, r := range raw {
		if f := Normalize(r); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

// fieldScore applies the match rules in order, first hit wins:
// query-in-field scales with the covered fraction of the field,
// field-in-query is a fixed weaker signal, otherwise fuzzy similarity.
// An empty query is a substring of every field and scores 90 — this is
// observable behavior, not special-cased away.
func fieldScore(q, f string) float64 {
	if strings.Contains(f, q) {
		return 90 + float64(utf8.RuneCountInString(q))/float64(utf8.RuneCountInString(f))*10
	}
	if strings.Contains(q, f) {
		return 85
	}
	return similarityRatio(q, f) * 100
}

// similarityRatio is an order-sensitive alignment similarity in [0, 1]:
// twice the matched rune count over the total rune count of both strings.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)

	var matched int
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			matched += utf8.RuneCountInString(d.Text)
		}
	}

	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	return float64(2*matched) / float64(total)
}

func tokenSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isSupersetOf(set, subset map[string]struct{}) bool {
	for w := range subset {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
