package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFees(t *testing.T) {
	t.Run("compact course line", func(t *testing.T) {
		entries := ExtractFees("Fee details\nB.Com. 3000.00")

		require.Len(t, entries, 1)
		assert.Equal(t, "What is the fee for B.Com.?", entries[0].Question)
		assert.Equal(t, "The fee for B.Com. is Rs. 3000.00.", entries[0].Answer)
		assert.Equal(t, "fees", entries[0].Category)
		assert.Equal(t, "en", entries[0].Language)
	})

	t.Run("dashed course line with currency", func(t *testing.T) {
		entries := ExtractFees("Course fee list\nBCA - Rs.26,000")

		require.Len(t, entries, 1)
		assert.Equal(t, "What is the fee for BCA?", entries[0].Question)
		assert.Equal(t, "The fee for BCA is Rs. 26,000.", entries[0].Answer)
	})

	t.Run("full course name with abbreviation", func(t *testing.T) {
		entries := ExtractFees("Tuition rates\nBachelor of Arts (B.A.): Rs. 15000")

		require.Len(t, entries, 1)
		assert.Equal(t, "What is the fee for B.A.?", entries[0].Question)
		assert.Equal(t, "The fee for B.A. is Rs. 15000.", entries[0].Answer)
	})

	t.Run("fee type line", func(t *testing.T) {
		entries := ExtractFees("Admission fee: 500")

		require.Len(t, entries, 1)
		assert.Equal(t, "What is the admission fee?", entries[0].Question)
		assert.Equal(t, "The admission fee is Rs. 500.", entries[0].Answer)
	})

	t.Run("multiple courses in one document", func(t *testing.T) {
		text := "Fee Structure:\n" +
			"B.A. - Rs. 15,000\n" +
			"B.Sc. - Rs. 18,000\n" +
			"BCA - Rs. 26,000\n"

		entries := ExtractFees(text)

		require.Len(t, entries, 3)

		questions := make([]string, 0, len(entries))
		for _, entry := range entries {
			questions = append(questions, entry.Question)
		}
		assert.Contains(t, questions, "What is the fee for B.A.?")
		assert.Contains(t, questions, "What is the fee for B.Sc.?")
		assert.Contains(t, questions, "What is the fee for BCA?")
	})

	t.Run("course variants deduplicate", func(t *testing.T) {
		text := "Fees:\nB.A. - Rs. 15,000\nBA: 15,000"

		entries := ExtractFees(text)
		assert.Len(t, entries, 1)
	})

	t.Run("no fee trigger means no extraction", func(t *testing.T) {
		entries := ExtractFees("The library opens at 8 AM. B.A. 15000")
		assert.Empty(t, entries)
	})
}

func TestFeeCandidatePriority(t *testing.T) {
	tests := []struct {
		feeType  string
		expected int
	}{
		{"total fee", 3},
		{"annual fee", 3},
		{"tuition fee", 2},
		{"admission fee", 1},
		{"semester fee", 1},
	}

	for _, test := range tests {
		t.Run(test.feeType, func(t *testing.T) {
			c := feeCandidate{course: "b.a", amount: "1000", feeType: test.feeType}
			assert.Equal(t, test.expected, c.priority())
		})
	}
}

func TestFeeCandidateDedupKey(t *testing.T) {
	a := feeCandidate{course: "B.A."}
	b := feeCandidate{course: "ba"}
	c := feeCandidate{course: "B. A."}

	assert.Equal(t, a.dedupKey(), b.dedupKey())
	assert.Equal(t, a.dedupKey(), c.dedupKey())
}
