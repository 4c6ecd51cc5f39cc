package knowledge

import "time"

// FAQ is a single question/answer pair extracted from a campus document
type FAQ struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	Question   string `json:"question" gorm:"column:question;type:text;not null"`
	Answer     string `json:"answer" gorm:"column:answer;type:text;not null"`
	Category   string `json:"category" gorm:"column:category;size:64;not null;index"`
	Language   string `json:"language" gorm:"column:language;size:8;default:en;index"`
	SourceFile string `json:"source_file" gorm:"column:source_file;size:255;index"`
	PageNumber int    `json:"page_number" gorm:"column:page_number"`
}

// TableName sets the table name for GORM
func (*FAQ) TableName() string {
	return "campus_faqs"
}

// Chunk is a raw text fragment of a processed document, kept alongside the
// structured FAQs for context retrieval
type Chunk struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	Content    string `json:"content" gorm:"column:content;type:text;not null"`
	SourceFile string `json:"source_file" gorm:"column:source_file;size:255;index"`
	PageNumber int    `json:"page_number" gorm:"column:page_number"`
	ChunkIndex int    `json:"chunk_index" gorm:"column:chunk_index"`
}

// TableName sets the table name for GORM
func (*Chunk) TableName() string {
	return "document_chunks"
}

// Result is a scored search hit over the knowledge base
type Result struct {
	Content    string   `json:"content"`
	Metadata   Metadata `json:"metadata"`
	Score      float64  `json:"similarity_score"`
	Confidence string   `json:"confidence"`
}

// Metadata describes where a search hit came from
type Metadata struct {
	Question   string `json:"question"`
	Category   string `json:"category"`
	Language   string `json:"language"`
	SourceFile string `json:"source_file"`
	DocType    string `json:"doc_type"`
}

// Statistics summarizes the stored knowledge base
type Statistics struct {
	TotalFAQs   int64            `json:"total_documents"`
	TotalChunks int64            `json:"total_chunks"`
	Categories  map[string]int64 `json:"categories"`
	Languages   map[string]int64 `json:"languages"`
}
