package auditlog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"campuschat/internal/stores/database"

	"gorm.io/gorm"
)

// Recorder accepts chat interactions for logging. Implementations must be
// safe for concurrent use.
type Recorder interface {
	Record(interaction Interaction)
	Close() error
}

// Store persists interactions to a dedicated sqlite logging database,
// writing asynchronously so chat latency never waits on the log
type Store struct {
	db *gorm.DB

	queue     chan Interaction
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewStore opens the logging database at the given sqlite path and starts
// the background writer
func NewStore(path string) (*Store, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Interaction{}, &DailySummary{}); err != nil {
		return nil, fmt.Errorf("failed to migrate log tables: %w", err)
	}

	s := &Store{
		db:    db,
		queue: make(chan Interaction, 256),
	}

	s.wg.Add(1)
	go s.writer()

	return s, nil
}

// Record queues an interaction for persistence. Drops the record when the
// queue is full rather than blocking the chat path.
func (s *Store) Record(interaction Interaction) {
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now().UTC()
	}

	select {
	case s.queue <- interaction:
	default:
		log.Printf("[AUDITLOG]: Queue full, dropping interaction for session %s", interaction.SessionID)
	}
}

// writer drains the queue until Close
func (s *Store) writer() {
	defer s.wg.Done()

	for interaction := range s.queue {
		if err := s.db.Create(&interaction).Error; err != nil {
			log.Printf("[AUDITLOG]: Failed to write interaction: %v", err)
		}
	}
}

// Close flushes pending interactions and closes the database
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

// CountInteractions returns interaction counts since a cutoff, total and
// errored
func (s *Store) CountInteractions(ctx context.Context, since time.Time) (total int64, errored int64, err error) {
	db := s.db.WithContext(ctx).Model(&Interaction{}).Where("created_at >= ?", since)

	if err = db.Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count interactions: %w", err)
	}

	if err = s.db.WithContext(ctx).Model(&Interaction{}).
		Where("created_at >= ? AND status = ?", since, StatusError).
		Count(&errored).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count errored interactions: %w", err)
	}

	return total, errored, nil
}

// CountInteractionsBetween returns interaction counts within [from, until),
// total and errored
func (s *Store) CountInteractionsBetween(ctx context.Context, from, until time.Time) (total int64, errored int64, err error) {
	if err = s.db.WithContext(ctx).Model(&Interaction{}).
		Where("created_at >= ? AND created_at < ?", from, until).
		Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count interactions: %w", err)
	}

	if err = s.db.WithContext(ctx).Model(&Interaction{}).
		Where("created_at >= ? AND created_at < ? AND status = ?", from, until, StatusError).
		Count(&errored).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count errored interactions: %w", err)
	}

	return total, errored, nil
}

// SaveSummary upserts the daily summary row for its date
func (s *Store) SaveSummary(ctx context.Context, summary *DailySummary) error {
	if summary.Date == "" {
		return fmt.Errorf("summary date cannot be empty")
	}

	var existing DailySummary
	err := s.db.WithContext(ctx).Where("date = ?", summary.Date).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := s.db.WithContext(ctx).Create(summary).Error; err != nil {
			return fmt.Errorf("failed to create daily summary: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up daily summary: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"sessions":      summary.Sessions,
		"user_messages": summary.UserMessages,
		"bot_messages":  summary.BotMessages,
		"errors":        summary.Errors,
	}).Error; err != nil {
		return fmt.Errorf("failed to update daily summary: %w", err)
	}

	return nil
}

// GetSummary returns the daily summary row for a date ("2006-01-02")
func (s *Store) GetSummary(ctx context.Context, date string) (*DailySummary, error) {
	var summary DailySummary
	if err := s.db.WithContext(ctx).Where("date = ?", date).First(&summary).Error; err != nil {
		return nil, fmt.Errorf("failed to get daily summary for %s: %w", date, err)
	}
	return &summary, nil
}

// NopRecorder is used when no logging database is configured
type NopRecorder struct{}

// Record discards the interaction
func (NopRecorder) Record(Interaction) {}

// Close is a no-op
func (NopRecorder) Close() error { return nil }
