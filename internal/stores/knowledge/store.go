package knowledge

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Store handles knowledge base persistence using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a knowledge store on an open GORM connection and migrates
// its tables
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}

	if err := db.AutoMigrate(&FAQ{}, &Chunk{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveFAQs stores a batch of extracted FAQs
func (s *Store) SaveFAQs(ctx context.Context, faqs []*FAQ) error {
	if len(faqs) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Create(faqs).Error; err != nil {
		return fmt.Errorf("failed to save faqs: %w", err)
	}

	return nil
}

// SaveChunks stores a batch of document chunks
func (s *Store) SaveChunks(ctx context.Context, chunks []*Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Create(chunks).Error; err != nil {
		return fmt.Errorf("failed to save chunks: %w", err)
	}

	return nil
}

// CountFAQsBySource counts FAQs extracted from a given source file
func (s *Store) CountFAQsBySource(ctx context.Context, sourceFile string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&FAQ{}).
		Where("source_file = ?", sourceFile).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count faqs: %w", err)
	}

	return count, nil
}

// SampleFAQsBySource returns up to n FAQs extracted from a given source file
func (s *Store) SampleFAQsBySource(ctx context.Context, sourceFile string, n int) ([]*FAQ, error) {
	if n <= 0 {
		n = 3
	}

	var faqs []*FAQ
	err := s.db.WithContext(ctx).
		Where("source_file = ?", sourceFile).
		Limit(n).
		Find(&faqs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sample faqs: %w", err)
	}

	return faqs, nil
}

// Clear deletes every FAQ and chunk from the knowledge base
func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&FAQ{}).Error; err != nil {
			return fmt.Errorf("failed to clear faqs: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&Chunk{}).Error; err != nil {
			return fmt.Errorf("failed to clear chunks: %w", err)
		}
		return nil
	})
}

// GetStatistics summarizes the stored knowledge base by category and language
func (s *Store) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		Categories: make(map[string]int64),
		Languages:  make(map[string]int64),
	}
	db := s.db.WithContext(ctx)

	if err := db.Model(&FAQ{}).Count(&stats.TotalFAQs).Error; err != nil {
		return nil, fmt.Errorf("failed to count faqs: %w", err)
	}
	if err := db.Model(&Chunk{}).Count(&stats.TotalChunks).Error; err != nil {
		return nil, fmt.Errorf("failed to count chunks: %w", err)
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byCategory []bucket
	if err := db.Model(&FAQ{}).
		Select("category AS key, COUNT(*) AS count").
		Group("category").
		Scan(&byCategory).Error; err != nil {
		return nil, fmt.Errorf("failed to group faqs by category: %w", err)
	}
	for _, b := range byCategory {
		stats.Categories[b.Key] = b.Count
	}

	var byLanguage []bucket
	if err := db.Model(&FAQ{}).
		Select("language AS key, COUNT(*) AS count").
		Group("language").
		Scan(&byLanguage).Error; err != nil {
		return nil, fmt.Errorf("failed to group faqs by language: %w", err)
	}
	for _, b := range byLanguage {
		stats.Languages[b.Key] = b.Count
	}

	return stats, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
