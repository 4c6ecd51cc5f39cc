package knowledge

import (
	"context"
	"path/filepath"
	"testing"

	"campuschat/internal/stores/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	store, err := NewStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestNewStore(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		_, err := NewStore(nil)
		assert.Error(t, err)
	})

	t.Run("valid database", func(t *testing.T) {
		store := newTestStore(t)
		assert.NotNil(t, store)
	})
}

func TestSaveAndCountFAQs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	faqs := []*FAQ{
		{Question: "What is the fee for B.A.?", Answer: "Rs. 15,000 per year.", Category: "fees", Language: "en", SourceFile: "fees.txt"},
		{Question: "What is the fee for B.Sc.?", Answer: "Rs. 18,000 per year.", Category: "fees", Language: "en", SourceFile: "fees.txt"},
		{Question: "पुस्तकालय का समय क्या है?", Answer: "सुबह 8 बजे से रात 8 बजे तक।", Category: "library", Language: "hi", SourceFile: "library.txt"},
	}

	require.NoError(t, store.SaveFAQs(ctx, faqs))

	count, err := store.CountFAQsBySource(ctx, "fees.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.CountFAQsBySource(ctx, "missing.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	t.Run("empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, store.SaveFAQs(ctx, nil))
	})
}

func TestSampleFAQsBySource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var faqs []*FAQ
	for i := 0; i < 5; i++ {
		faqs = append(faqs, &FAQ{
			Question:   "What is the hostel policy?",
			Answer:     "Hostel rooms are allotted on a first come first served basis.",
			Category:   "hostel",
			Language:   "en",
			SourceFile: "hostel.txt",
		})
	}
	require.NoError(t, store.SaveFAQs(ctx, faqs))

	samples, err := store.SampleFAQsBySource(ctx, "hostel.txt", 3)
	require.NoError(t, err)
	assert.Len(t, samples, 3)

	// Non-positive n defaults to 3
	samples, err = store.SampleFAQsBySource(ctx, "hostel.txt", 0)
	require.NoError(t, err)
	assert.Len(t, samples, 3)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFAQs(ctx, []*FAQ{
		{Question: "What is the admission process?", Answer: "Applications open in June every year.", Category: "admission"},
	}))
	require.NoError(t, store.SaveChunks(ctx, []*Chunk{
		{Content: "Admission chunk", SourceFile: "admissions.txt"},
	}))

	require.NoError(t, store.Clear(ctx))

	stats, err := store.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalFAQs)
	assert.Zero(t, stats.TotalChunks)
}

func TestGetStatistics(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveFAQs(ctx, []*FAQ{
		{Question: "Fee question one?", Answer: "Answer one.", Category: "fees", Language: "en"},
		{Question: "Fee question two?", Answer: "Answer two.", Category: "fees", Language: "hi"},
		{Question: "Library question?", Answer: "Answer three.", Category: "library", Language: "en"},
	}))
	require.NoError(t, store.SaveChunks(ctx, []*Chunk{
		{Content: "chunk one"},
		{Content: "chunk two"},
	}))

	stats, err := store.GetStatistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalFAQs)
	assert.Equal(t, int64(2), stats.TotalChunks)
	assert.Equal(t, map[string]int64{"fees": 2, "library": 1}, stats.Categories)
	assert.Equal(t, map[string]int64{"en": 2, "hi": 1}, stats.Languages)
}
