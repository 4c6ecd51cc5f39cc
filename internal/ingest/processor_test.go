package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQA(t *testing.T) {
	p := NewProcessor(nil)

	t.Run("explicit markers", func(t *testing.T) {
		text := "Q: What are the library timings?\n" +
			"A: The library is open from 8 AM to 8 PM on weekdays and Saturdays.\n" +
			"\n" +
			"Q: How many books can I borrow?\n" +
			"A: Undergraduate students can borrow up to three books at a time.\n"

		entries := p.extractQA(text)

		require.Len(t, entries, 2)
		assert.Equal(t, "What are the library timings?", entries[0].Question)
		assert.Equal(t, "The library is open from 8 AM to 8 PM on weekdays and Saturdays.", entries[0].Answer)
		assert.Equal(t, "library", entries[0].Category)
		assert.Equal(t, "en", entries[0].Language)

		assert.Equal(t, "How many books can I borrow?", entries[1].Question)
	})

	t.Run("bare question lines", func(t *testing.T) {
		text := "What are the hostel facilities?\n" +
			"The hostel provides furnished rooms, a common mess, and round the clock security.\n"

		entries := p.extractQA(text)

		require.Len(t, entries, 1)
		assert.Equal(t, "What are the hostel facilities?", entries[0].Question)
		assert.Equal(t, "hostel", entries[0].Category)
	})

	t.Run("mixed markers and bare questions", func(t *testing.T) {
		text := "Q: What are the library timings?\n" +
			"A: The library is open from 8 AM to 8 PM on weekdays and Saturdays.\n" +
			"\n" +
			"What are the hostel facilities?\n" +
			"The hostel provides furnished rooms, a common mess, and round the clock security.\n"

		entries := p.extractQA(text)

		require.Len(t, entries, 2)
		assert.Equal(t, "What are the library timings?", entries[0].Question)
		assert.Equal(t, "What are the hostel facilities?", entries[1].Question)
	})

	t.Run("duplicate questions are kept once", func(t *testing.T) {
		text := "Q: What are the library timings?\n" +
			"A: The library is open from 8 AM to 8 PM on weekdays and Saturdays.\n" +
			"\n" +
			"Q: What are the library timings?\n" +
			"A: The library is open from 8 AM to 8 PM on weekdays and Saturdays.\n"

		entries := p.extractQA(text)
		require.Len(t, entries, 1)
	})

	t.Run("short answers are rejected", func(t *testing.T) {
		entries := p.extractQA("Q: What is the fee?\nA: Rs. 500\n")
		assert.Empty(t, entries)
	})

	t.Run("questions without a question mark are rejected", func(t *testing.T) {
		entries := p.extractQA("Q: Tell me about fees\nA: The annual fee for B.A. is fifteen thousand rupees.\n")
		assert.Empty(t, entries)
	})
}

func TestExtractTableRows(t *testing.T) {
	p := NewProcessor(nil)

	text := "FEE STRUCTURE\n" +
		"Admission Fee      500\n" +
		"Library Deposit    1000\n" +
		"Total Amount       26000\n"

	entries := p.extractTableRows(text)

	require.Len(t, entries, 2)
	assert.Equal(t, "What is the admission fee?", entries[0].Question)
	assert.Equal(t, "The admission fee is Rs. 500.", entries[0].Answer)
	assert.Equal(t, "What is the total amount?", entries[1].Question)
}

func TestExtractSections(t *testing.T) {
	p := NewProcessor(nil)

	text := "The central library subscribes to over two hundred journals and provides quiet study halls for students preparing for exams.\n\nShort paragraph.\n"

	entries := p.extractSections(text)

	require.Len(t, entries, 1)
	assert.Equal(t, "What are the details for exam, library?", entries[0].Question)
	assert.Equal(t, "academic", entries[0].Category)
	assert.Contains(t, entries[0].Answer, "central library")
}

func TestParse(t *testing.T) {
	p := NewProcessor(nil)

	text := "Fee Structure:\n" +
		"B.A. - Rs. 15,000\n" +
		"\n" +
		"Q: What are the library timings?\n" +
		"A: The library is open from 8 AM to 8 PM on weekdays and Saturdays.\n"

	entries := p.Parse(text)

	questions := make([]string, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, entry.Question)
	}

	assert.Contains(t, questions, "What is the fee for B.A.?")
	assert.Contains(t, questions, "What are the library timings?")
}

func TestCategorize(t *testing.T) {
	p := NewProcessor(nil)

	tests := []struct {
		text     string
		expected string
	}{
		{"How do I pay my tuition fee?", "fees"},
		{"छात्रवृत्ति आवेदन", "scholarship"},
		{"hostel mess menu", "hostel"},
		{"placement drive next week", "placement"},
		{"random unrelated text", "general"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, p.Categorize(test.text))
		})
	}
}

func TestKeyTerms(t *testing.T) {
	p := NewProcessor(nil)

	terms := p.KeyTerms("The library fee covers exam registration and lab access for every course.")

	// At most three terms, deduplicated
	assert.LessOrEqual(t, len(terms), 3)
	assert.Contains(t, terms, "exam")
}

func TestChunks(t *testing.T) {
	t.Run("short text stays in one chunk", func(t *testing.T) {
		chunks := Chunks("First sentence. Second sentence! Third?", 100)
		assert.Equal(t, []string{"First sentence. Second sentence. Third."}, chunks)
	})

	t.Run("long text splits at sentence boundaries", func(t *testing.T) {
		s1 := strings.Repeat("a", 40)
		s2 := strings.Repeat("b", 40)

		chunks := Chunks(s1+". "+s2+".", 50)
		assert.Equal(t, []string{s1 + ".", s2 + "."}, chunks)
	})

	t.Run("empty text", func(t *testing.T) {
		assert.Empty(t, Chunks("", 500))
	})
}
