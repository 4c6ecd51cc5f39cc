package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Confidence bands for search scores
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// coursePatterns maps canonical course names onto the phrasings students use
var coursePatterns = map[string][]string{
	"b.a":   {"b.a", "bachelor of arts", "arts"},
	"b.sc":  {"b.sc", "bsc", "bachelor of science", "science"},
	"b.com": {"b.com", "bcom", "bachelor of commerce", "commerce"},
	"bca":   {"bca", "bachelor of computer application"},
	"bba":   {"bba", "bachelor of business administration"},
	"mba":   {"mba", "master of business administration"},
	"h.s":   {"h.s", "higher secondary"},
}

// feePatterns maps fee types onto their query phrasings
var feePatterns = map[string][]string{
	"tuition":   {"tuition"},
	"admission": {"admission"},
	"total":     {"total", "overall"},
	"fees":      {"fee", "fees", "cost", "amount"},
}

// Search performs course-aware keyword search over the FAQ table. Matches
// are scored for relevance and returned best-first, at most limit results.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = 5
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	courses := ExtractCourses(queryLower)
	feeTypes := ExtractFeeTypes(queryLower)

	// Build LIKE conditions from detected courses and fee types, falling
	// back to per-word matching for generic queries
	var conditions []string
	var params []any

	addTerm := func(term string) {
		conditions = append(conditions, "(LOWER(question) LIKE ? OR LOWER(answer) LIKE ?)")
		pattern := "%" + term + "%"
		params = append(params, pattern, pattern)
	}

	for _, course := range courses {
		addTerm(course)
	}
	for _, feeType := range feeTypes {
		addTerm(feeType)
	}
	if len(conditions) == 0 {
		for _, word := range strings.Fields(queryLower) {
			if len(word) > 2 {
				addTerm(word)
			}
		}
	}
	if len(conditions) == 0 {
		return []*Result{}, nil
	}

	var faqs []*FAQ
	err := s.db.WithContext(ctx).
		Where(strings.Join(conditions, " OR "), params...).
		Limit(limit * 4). // over-fetch, scoring trims below
		Find(&faqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search faqs: %w", err)
	}

	results := make([]*Result, 0, len(faqs))
	for _, faq := range faqs {
		score := scoreRelevance(queryLower, faq.Question, faq.Answer, courses, feeTypes)
		results = append(results, &Result{
			Content: faq.Answer,
			Metadata: Metadata{
				Question:   faq.Question,
				Category:   faq.Category,
				Language:   faq.Language,
				SourceFile: faq.SourceFile,
				DocType:    "faq",
			},
			Score:      score,
			Confidence: confidenceFor(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		// Prefer shorter answers on ties, they tend to be direct facts
		return len(results[i].Content) < len(results[j].Content)
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// ExtractCourses detects canonical course names mentioned in a query
func ExtractCourses(query string) []string {
	var courses []string

	for _, canonical := range orderedKeys(coursePatterns) {
		for _, variation := range coursePatterns[canonical] {
			if strings.Contains(query, variation) {
				courses = append(courses, canonical)
				break
			}
		}
	}

	return courses
}

// ExtractFeeTypes detects fee-type phrasings mentioned in a query
func ExtractFeeTypes(query string) []string {
	var feeTypes []string

	for _, feeType := range orderedKeys(feePatterns) {
		for _, variation := range feePatterns[feeType] {
			if strings.Contains(query, variation) {
				feeTypes = append(feeTypes, feeType)
				break
			}
		}
	}

	return feeTypes
}

// scoreRelevance weighs course mentions highest, fee types next, then plain
// word overlap. Scores are capped at 1.0.
func scoreRelevance(query, question, answer string, courses, feeTypes []string) float64 {
	questionLower := strings.ToLower(question)
	answerLower := strings.ToLower(answer)

	score := 0.0

	for _, course := range courses {
		if strings.Contains(questionLower, course) {
			score += 0.5
		} else if strings.Contains(answerLower, course) {
			score += 0.3
		}
	}

	for _, feeType := range feeTypes {
		if strings.Contains(questionLower, feeType) {
			score += 0.3
		} else if strings.Contains(answerLower, feeType) {
			score += 0.2
		}
	}

	queryWords := fieldSet(query)
	if len(queryWords) > 0 {
		questionOverlap := overlap(queryWords, fieldSet(questionLower))
		answerOverlap := overlap(queryWords, fieldSet(answerLower))

		score += questionOverlap * 0.2
		score += answerOverlap * 0.1
	}

	return min(score, 1.0)
}

// confidenceFor maps a relevance score onto a confidence band
func confidenceFor(score float64) string {
	switch {
	case score > 0.7:
		return ConfidenceHigh
	case score > 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func fieldSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(s) {
		set[word] = struct{}{}
	}
	return set
}

func overlap(query, target map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}

	matched := 0
	for word := range query {
		if _, ok := target[word]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(query))
}

// orderedKeys returns map keys sorted for deterministic iteration
func orderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
