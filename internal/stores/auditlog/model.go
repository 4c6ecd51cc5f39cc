package auditlog

import "time"

// Interaction statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Interaction is one chat exchange recorded in the logging database
type Interaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;index"`

	SessionID string `json:"session_id" gorm:"column:session_id;type:char(36);index"`
	Question  string `json:"question" gorm:"column:question;type:text"`
	Answer    string `json:"answer" gorm:"column:answer;type:text"`
	Status    string `json:"status" gorm:"column:status;size:16;index"`
	LatencyMs int64  `json:"latency_ms" gorm:"column:latency_ms"`
}

// TableName sets the table name for GORM
func (*Interaction) TableName() string {
	return "interactions"
}

// DailySummary aggregates one day of chatbot usage
type DailySummary struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	Date         string `json:"date" gorm:"column:date;size:10;uniqueIndex"`
	Sessions     int64  `json:"sessions" gorm:"column:sessions"`
	UserMessages int64  `json:"user_messages" gorm:"column:user_messages"`
	BotMessages  int64  `json:"bot_messages" gorm:"column:bot_messages"`
	Errors       int64  `json:"errors" gorm:"column:errors"`
}

// TableName sets the table name for GORM
func (*DailySummary) TableName() string {
	return "daily_summaries"
}
