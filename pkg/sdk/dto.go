package sdk

import "time"

// StatusType marks an API response as success or error
type StatusType string

// Response statuses
const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse represents the standard API response envelope
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status marker
	Code    int        `json:"code"`            // HTTP status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data for successful responses
	Error   any        `json:"error,omitempty"` // Optional error detail
}

// AsGinResponse converts the ApiResponse to (code, body) for gin's c.JSON
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	resp := ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
	}

	// Keep raw error values out of the wire format
	switch e := err.(type) {
	case nil:
	case error:
		resp.Error = e.Error()
	default:
		resp.Error = e
	}

	return resp
}

/** Requests */

// ChatRequest is the body for POST /api/v1/chat
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

// IngestRequest is the JSON body for POST /api/v1/admin/documents
type IngestRequest struct {
	Filename string `json:"filename" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

/** Responses */

// ChatResponse carries the bot's reply for one exchange
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Language  string `json:"language,omitempty"`
}

// Message is one user or bot message in a session
type Message struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
}

// Session is a conversation with its messages
type Session struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	UserID    string     `json:"user_id"`
	Active    bool       `json:"active"`
	Messages  []*Message `json:"messages,omitempty"`
}

// SearchResult is one scored knowledge base hit
type SearchResult struct {
	Content  string `json:"content"`
	Metadata struct {
		Question   string `json:"question"`
		Category   string `json:"category"`
		Language   string `json:"language"`
		SourceFile string `json:"source_file"`
		DocType    string `json:"doc_type"`
	} `json:"metadata"`
	Score      float64 `json:"similarity_score"`
	Confidence string  `json:"confidence"`
}

// SearchResponse is the result set for GET /api/v1/search_documents
type SearchResponse struct {
	Query      string         `json:"query"`
	Results    []SearchResult `json:"results"`
	TotalFound int            `json:"total_found"`
}

// StatsResponse mirrors GET /api/v1/admin/stats
type StatsResponse struct {
	TotalSessions       int64            `json:"total_conversations"`
	ActiveSessions      int64            `json:"active_sessions"`
	SessionsToday       int64            `json:"sessions_today"`
	UserMessages        int64            `json:"user_messages"`
	BotMessages         int64            `json:"bot_messages"`
	KnowledgeFAQs       int64            `json:"knowledge_faqs"`
	KnowledgeChunks     int64            `json:"knowledge_chunks"`
	KnowledgeByCategory map[string]int64 `json:"knowledge_by_category"`
	KnowledgeByLanguage map[string]int64 `json:"knowledge_by_language"`
}

// IngestResponse reports what a document ingest extracted
type IngestResponse struct {
	Filename        string   `json:"filename"`
	FAQCount        int64    `json:"faq_count"`
	ChunkCount      int      `json:"chunk_count"`
	SampleQuestions []string `json:"sample_questions,omitempty"`
	Warning         string   `json:"warning,omitempty"`
}

// BannerResponse is the service banner for GET /api/v1/
type BannerResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}
