package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry is one extracted FAQ, before persistence
type Entry struct {
	Question string
	Answer   string
	Category string
	Language string
}

// Processor extracts structured FAQ entries and text chunks from campus
// documents
type Processor struct {
	rules *Rules
}

// NewProcessor creates a processor with the given rules, defaulting when nil
func NewProcessor(rules *Rules) *Processor {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Processor{rules: rules}
}

// Parse runs every extraction strategy over a document's text: fee facts,
// explicit Q&A blocks, table rows, and free-form content sections
func (p *Processor) Parse(text string) []Entry {
	var entries []Entry

	entries = append(entries, ExtractFees(text)...)
	entries = append(entries, p.extractQA(text)...)
	entries = append(entries, p.extractTableRows(text)...)
	entries = append(entries, p.extractSections(text)...)

	return entries
}

var (
	qaMarkerRe     = regexp.MustCompile(`(?m)^\s*Q\d*[:.]\s*`)
	answerMarkerRe = regexp.MustCompile(`A\d*[:.]\s*`)
	amountRe       = regexp.MustCompile(`\d+(?:,\d+)*(?:\.\d+)?`)
	numberRe       = regexp.MustCompile(`\d+(?:\.\d+)?`)
	tableSplitRe   = regexp.MustCompile(`\s{2,}|\t`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]+`)
)

// extractQA finds question/answer pairs, both explicit "Q: ... A: ..."
// blocks and bare question lines followed by their answers
func (p *Processor) extractQA(text string) []Entry {
	var entries []Entry
	seen := make(map[string]struct{})

	add := func(question, answer string) {
		question = normalizeSpace(question)
		answer = normalizeSpace(answer)

		if len(question) <= 5 || len(answer) <= 20 || !strings.Contains(question, "?") {
			return
		}
		key := strings.ToLower(question)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		entries = append(entries, Entry{
			Question: question,
			Answer:   answer,
			Language: DetectLanguage(question),
			Category: p.Categorize(question),
		})
	}

	// Explicit Q/A markers. Each marker starts a block that runs to the
	// next marker or a blank line; the A marker splits question from answer.
	locs := qaMarkerRe.FindAllStringIndex(text, -1)
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := text[loc[1]:end]
		if cut := strings.Index(block, "\n\n"); cut != -1 {
			block = block[:cut]
		}

		if aLoc := answerMarkerRe.FindStringIndex(block); aLoc != nil {
			add(block[:aLoc[0]], block[aLoc[1]:])
		}
	}

	// Bare question lines: a line ending in '?' answered by the lines that
	// follow it, up to a blank line or the next question. Marked lines
	// already belong to a Q/A block above.
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		if qaMarkerRe.MatchString(lines[i]) {
			continue
		}
		question := strings.TrimSpace(lines[i])
		if !strings.HasSuffix(question, "?") {
			continue
		}

		var answerLines []string
		j := i + 1
		for ; j < len(lines); j++ {
			line := strings.TrimSpace(lines[j])
			if line == "" || strings.HasSuffix(line, "?") {
				break
			}
			answerLines = append(answerLines, line)
		}

		if len(answerLines) > 0 {
			add(question, strings.Join(answerLines, " "))
			i = j - 1
		}
	}

	return entries
}

// extractTableRows mines table-like lines (label columns next to numeric
// columns) for fee facts
func (p *Processor) extractTableRows(text string) []Entry {
	var entries []Entry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 10 || !numberRe.MatchString(line) || len(strings.Fields(line)) < 2 {
			continue
		}
		// All-caps lines are headers, not data rows
		if line == strings.ToUpper(line) && line != strings.ToLower(line) {
			continue
		}

		parts := tableSplitRe.Split(line, -1)
		if len(parts) < 2 {
			continue
		}

		keyPart := strings.TrimSpace(parts[0])
		valueParts := make([]string, 0, len(parts)-1)
		for _, part := range parts[1:] {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				valueParts = append(valueParts, trimmed)
			}
		}
		if keyPart == "" || len(valueParts) == 0 {
			continue
		}

		amounts := amountRe.FindAllString(strings.Join(valueParts, " "), -1)
		if len(amounts) == 0 {
			continue
		}

		keyLower := strings.ToLower(keyPart)
		if strings.Contains(keyLower, "fee") || strings.Contains(keyLower, "cost") ||
			strings.Contains(keyLower, "amount") || strings.Contains(keyLower, "price") {
			entries = append(entries, Entry{
				Question: fmt.Sprintf("What is the %s?", keyLower),
				Answer:   fmt.Sprintf("The %s is Rs. %s.", keyLower, amounts[0]),
				Language: "en",
				Category: p.Categorize(keyPart),
			})
		}
	}

	return entries
}

// extractSections turns short free-form paragraphs into lookup entries keyed
// by the document's important terms
func (p *Processor) extractSections(text string) []Entry {
	var entries []Entry

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if len(paragraph) <= 30 || len(paragraph) > 500 {
			continue
		}

		terms := p.KeyTerms(paragraph)
		if len(terms) == 0 {
			continue
		}

		var question string
		if len(terms) == 1 {
			question = fmt.Sprintf("What information is available about %s?", terms[0])
		} else {
			question = fmt.Sprintf("What are the details for %s?", strings.Join(terms[:2], ", "))
		}

		answer := paragraph
		if len(answer) > 400 {
			answer = answer[:400] + "..."
		}

		entries = append(entries, Entry{
			Question: question,
			Answer:   answer,
			Language: DetectLanguage(paragraph),
			Category: p.Categorize(strings.Join(terms, " ")),
		})
	}

	return entries
}

// KeyTerms extracts up to three important terms from a text, in rule order
func (p *Processor) KeyTerms(text string) []string {
	textLower := strings.ToLower(text)

	var found []string
	seen := make(map[string]struct{})

	for _, topic := range p.rules.keyTermTopics() {
		for _, term := range p.rules.KeyTerms[topic] {
			if _, dup := seen[term]; dup {
				continue
			}
			if strings.Contains(textLower, term) {
				found = append(found, term)
				seen[term] = struct{}{}
			}
		}
	}

	if len(found) > 3 {
		found = found[:3]
	}
	return found
}

// Categorize assigns a category based on keyword rules, "general" otherwise
func (p *Processor) Categorize(text string) string {
	textLower := strings.ToLower(text)

	for _, category := range p.rules.categoryNames() {
		for _, keyword := range p.rules.Categories[category] {
			if strings.Contains(textLower, keyword) {
				return category
			}
		}
	}

	return "general"
}

// Chunks splits text into sentence-aligned fragments of at most maxLength
// characters
func Chunks(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = 500
	}

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentenceEndRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if current.Len()+len(sentence) >= maxLength && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(sentence)
		current.WriteString(". ")
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// normalizeSpace collapses runs of whitespace into single spaces
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
