package ingest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// Course token with word boundaries so "Bachelor" does not match as "Ba".
	// The trailing dot of abbreviations like "B.Com." is kept in the match.
	courseRe = regexp.MustCompile(`(?i)\b(?:b\.?a|b\.?com|b\.?sc|m\.?a|m\.?com|m\.?sc|bca|bba|mba|h\.?s)\b\.?`)

	// Fee-type line: "Admission fee: 500", "Total Fee Rs. 12000"
	feeTypeRe = regexp.MustCompile(`(?i)\b((?:tuition|admission|total|annual|semester)\s+fees?)[^\d\n]*?(\d+(?:,\d+)*(?:\.\d+)?)`)

	feeAmountRe = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d+)?`)
	feeTriggers = []string{"fee", "tuition", "cost", "payment", "price"}
)

// feeCandidate is one detected fee fact, before per-course deduplication
type feeCandidate struct {
	course  string
	amount  string
	feeType string
}

// priority ranks fee types so the most specific figure wins per course:
// total and annual fees beat tuition fees beat generic mentions
func (f feeCandidate) priority() int {
	feeType := strings.ToLower(f.feeType)
	switch {
	case strings.Contains(feeType, "total") || strings.Contains(feeType, "annual"):
		return 3
	case strings.Contains(feeType, "tuition"):
		return 2
	default:
		return 1
	}
}

// dedupKey normalizes the course name so "B.A." and "BA" collapse together
func (f feeCandidate) dedupKey() string {
	key := strings.ToLower(f.course)
	key = strings.ReplaceAll(key, ".", "")
	key = strings.ReplaceAll(key, " ", "")
	return key
}

// ExtractFees pulls fee facts out of free text and turns them into FAQ
// entries. Runs only when the text mentions fees at all; keeps the highest
// priority figure per course.
func ExtractFees(text string) []Entry {
	textLower := strings.ToLower(text)

	triggered := false
	for _, trigger := range feeTriggers {
		if strings.Contains(textLower, trigger) {
			triggered = true
			break
		}
	}
	if !triggered {
		return nil
	}

	found := make(map[string]feeCandidate)
	consider := func(c feeCandidate) {
		if len(c.course) < 2 || len(c.amount) < 2 {
			return
		}
		key := c.dedupKey()
		if existing, ok := found[key]; !ok || existing.priority() < c.priority() {
			found[key] = c
		}
	}

	// Course lines: "B.Com. 3000.00", "BCA - Rs.26,000",
	// "Bachelor of Arts (B.A.): Rs. 15000". The first amount after the
	// course name on the line is taken as its fee.
	for _, line := range strings.Split(text, "\n") {
		loc := courseRe.FindStringIndex(line)
		if loc == nil {
			continue
		}

		amount := feeAmountRe.FindString(line[loc[1]:])
		if amount == "" {
			continue
		}

		consider(feeCandidate{
			course:  cleanCourse(line[loc[0]:loc[1]]),
			amount:  amount,
			feeType: "tuition fee",
		})
	}

	for _, match := range feeTypeRe.FindAllStringSubmatch(text, -1) {
		feeType := strings.ToLower(normalizeSpace(match[1]))
		consider(feeCandidate{
			course:  feeType,
			amount:  strings.TrimSpace(match[2]),
			feeType: feeType,
		})
	}

	// Deterministic output order
	keys := make([]string, 0, len(found))
	for key := range found {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(found))
	for _, key := range keys {
		c := found[key]

		var question, answer string
		if courseRe.MatchString(c.course) {
			question = fmt.Sprintf("What is the fee for %s?", c.course)
			answer = fmt.Sprintf("The fee for %s is Rs. %s.", c.course, c.amount)
		} else {
			question = fmt.Sprintf("What is the %s?", strings.ToLower(c.course))
			answer = fmt.Sprintf("The %s is Rs. %s.", strings.ToLower(c.course), c.amount)
		}

		entries = append(entries, Entry{
			Question: question,
			Answer:   answer,
			Language: "en",
			Category: "fees",
		})
	}

	return entries
}

// cleanCourse strips punctuation noise from a matched course name
func cleanCourse(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == ' ':
			return r
		default:
			return ' '
		}
	}, raw)

	return normalizeSpace(cleaned)
}
