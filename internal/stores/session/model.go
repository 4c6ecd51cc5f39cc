package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message senders
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Session represents one conversation between a user and the chatbot
type Session struct {
	ID        uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey;not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"column:deleted_at;index"`

	UserID   string     `json:"user_id" gorm:"column:user_id;size:255;index"`
	Active   bool       `json:"active" gorm:"column:active;default:true;index"`
	Messages []*Message `json:"messages,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for GORM
func (*Session) TableName() string {
	return "sessions"
}

// GetMessageCount returns the number of loaded messages in the session
func (s *Session) GetMessageCount() int {
	return len(s.Messages)
}

// GetLastMessage returns the last loaded message, or nil if none exist
func (s *Session) GetLastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return s.Messages[len(s.Messages)-1]
}

// Message represents a single user or bot message within a session
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	SessionID uuid.UUID `json:"session_id" gorm:"type:char(36);not null;index"`
	Sender    string    `json:"sender" gorm:"column:sender;size:16;not null"`
	Text      string    `json:"text" gorm:"column:text;type:text;not null"`
	Language  string    `json:"language" gorm:"column:language;size:8;default:en"`
}

// TableName sets the table name for GORM
func (*Message) TableName() string {
	return "messages"
}
