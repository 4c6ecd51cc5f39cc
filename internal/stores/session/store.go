package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store handles session and message persistence using GORM
type Store struct {
	db *gorm.DB
}

// NewStore creates a session store on an open GORM connection and migrates
// its tables
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection cannot be nil")
	}

	if err := db.AutoMigrate(&Session{}, &Message{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &Store{db: db}, nil
}

// CreateSession creates a new active session for a user
func (s *Store) CreateSession(ctx context.Context, userID string) (*Session, error) {
	session := &Session{
		ID:     uuid.New(),
		UserID: userID,
		Active: true,
	}

	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetOrCreateActiveSession returns the user's active session, creating one
// when none exists. A user has at most one active session at a time.
func (s *Store) GetOrCreateActiveSession(ctx context.Context, userID string) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC").
		First(&session).Error

	if err == nil {
		return &session, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}

	return s.CreateSession(ctx, userID)
}

// GetSession retrieves a session by ID
func (s *Store) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// GetSessionWithMessages retrieves a session with its messages preloaded in
// chronological order (created_at, then id for tie-breaks)
func (s *Store) GetSessionWithMessages(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var session Session
	err := s.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		First(&session, "id = ?", sessionID).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session with messages: %w", err)
	}

	return &session, nil
}

// SaveMessage appends a message to a session and bumps the session's
// updated_at so idle-session maintenance sees activity
func (s *Store) SaveMessage(ctx context.Context, msg *Message) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}
	if msg.Sender != SenderUser && msg.Sender != SenderBot {
		return fmt.Errorf("invalid sender %q", msg.Sender)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}

		if err := tx.Model(&Session{}).
			Where("id = ?", msg.SessionID).
			Update("updated_at", time.Now().UTC()).Error; err != nil {
			return fmt.Errorf("failed to touch session: %w", err)
		}

		return nil
	})
}

// GetMessages retrieves all messages for a session in chronological order
func (s *Store) GetMessages(ctx context.Context, sessionID uuid.UUID) ([]*Message, error) {
	var messages []*Message
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	return messages, nil
}

// DeleteSession deletes a session and its messages
func (s *Store) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&Message{}).Error; err != nil {
			return fmt.Errorf("failed to delete session messages: %w", err)
		}

		if err := tx.Where("id = ?", sessionID).Delete(&Session{}).Error; err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	})
}

// DeactivateIdleSessions marks sessions with no activity since the cutoff as
// inactive and returns how many were affected
func (s *Store) DeactivateIdleSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&Session{}).
		Where("active = ? AND updated_at < ?", true, cutoff).
		Update("active", false)

	if result.Error != nil {
		return 0, fmt.Errorf("failed to deactivate idle sessions: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// Stats aggregates usage counters for the admin dashboard
type Stats struct {
	TotalSessions  int64 `json:"total_sessions"`
	ActiveSessions int64 `json:"active_sessions"`
	TotalMessages  int64 `json:"total_messages"`
	UserMessages   int64 `json:"user_messages"`
	BotMessages    int64 `json:"bot_messages"`
	SessionsToday  int64 `json:"sessions_today"`
}

// GetStats computes usage statistics over sessions and messages
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := s.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalSessions, db.Model(&Session{})},
		{&stats.ActiveSessions, db.Model(&Session{}).Where("active = ?", true)},
		{&stats.TotalMessages, db.Model(&Message{})},
		{&stats.UserMessages, db.Model(&Message{}).Where("sender = ?", SenderUser)},
		{&stats.BotMessages, db.Model(&Message{}).Where("sender = ?", SenderBot)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}

	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)
	if err := db.Model(&Session{}).
		Where("created_at >= ?", startOfDay).
		Count(&stats.SessionsToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count sessions today: %w", err)
	}

	return &stats, nil
}

// DayStats aggregates usage counters for a single UTC day
type DayStats struct {
	Sessions     int64 `json:"sessions"`
	UserMessages int64 `json:"user_messages"`
	BotMessages  int64 `json:"bot_messages"`
}

// GetStatsForDay counts sessions and messages created during the 24 hours
// starting at the given day
func (s *Store) GetStatsForDay(ctx context.Context, day time.Time) (*DayStats, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)

	var stats DayStats
	db := s.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.Sessions, db.Model(&Session{}).
			Where("created_at >= ? AND created_at < ?", start, end)},
		{&stats.UserMessages, db.Model(&Message{}).
			Where("sender = ? AND created_at >= ? AND created_at < ?", SenderUser, start, end)},
		{&stats.BotMessages, db.Model(&Message{}).
			Where("sender = ? AND created_at >= ? AND created_at < ?", SenderBot, start, end)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute daily stats: %w", err)
		}
	}

	return &stats, nil
}

// RecentMessages returns the newest n messages across all sessions
func (s *Store) RecentMessages(ctx context.Context, n int) ([]*Message, error) {
	if n <= 0 {
		n = 10
	}

	var messages []*Message
	err := s.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(n).
		Find(&messages).Error

	if err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}

	return messages, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
