package ingest

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Rules drive FAQ categorization and key-term detection. Campuses can
// override the defaults with a YAML file (RULES_FILE).
type Rules struct {
	// Categories maps a category name onto keywords that select it
	Categories map[string][]string `yaml:"categories"`

	// KeyTerms maps a topic onto terms worth building section questions from
	KeyTerms map[string][]string `yaml:"key_terms"`
}

// DefaultRules returns the built-in categorization rules for Indian college
// documents
func DefaultRules() *Rules {
	return &Rules{
		Categories: map[string][]string{
			"fees":        {"fee", "payment", "cost", "tuition", "money", "pay", "charge"},
			"scholarship": {"scholarship", "financial aid", "grant", "funding", "छात्रवृत्ति"},
			"library":     {"library", "book", "study", "research", "journal", "reading"},
			"hostel":      {"hostel", "accommodation", "mess", "room", "boarding", "residential"},
			"admission":   {"admission", "application", "eligibility", "entrance", "enroll"},
			"academic":    {"exam", "grade", "semester", "course", "syllabus", "class"},
			"placement":   {"placement", "job", "career", "internship", "company", "recruitment"},
		},
		KeyTerms: map[string][]string{
			"fees":           {"fee", "tuition", "cost", "payment", "amount"},
			"courses":        {"b.a", "b.com", "b.sc", "bca", "bba", "mba", "course", "program"},
			"facilities":     {"library", "lab", "hostel", "mess", "campus"},
			"academic":       {"exam", "admission", "semester", "year", "subject"},
			"administration": {"registration", "enrollment", "identity", "card"},
		},
	}
}

// LoadRules reads categorization rules from a YAML file, merging them over
// the defaults. Sections absent from the file keep their default values, and
// an empty path returns the defaults unchanged.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rules := DefaultRules()
	if len(loaded.Categories) > 0 {
		rules.Categories = loaded.Categories
	}
	if len(loaded.KeyTerms) > 0 {
		rules.KeyTerms = loaded.KeyTerms
	}

	return rules, nil
}

// categoryNames returns category names in deterministic order
func (r *Rules) categoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// keyTermTopics returns key-term topics in deterministic order
func (r *Rules) keyTermTopics() []string {
	topics := make([]string, 0, len(r.KeyTerms))
	for topic := range r.KeyTerms {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}
