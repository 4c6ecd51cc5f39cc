package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"campuschat/internal/genai"
	"campuschat/internal/ingest"
	"campuschat/internal/stores/auditlog"
	"campuschat/internal/stores/knowledge"
	"campuschat/internal/stores/session"

	"github.com/google/uuid"
)

// FallbackResponse is returned to students when the generative backend fails
const FallbackResponse = "I apologize, but I encountered an issue processing your request. Please try again."

// ErrEmptyMessage rejects chat requests with no message text
var ErrEmptyMessage = errors.New("message cannot be empty")

// Generator produces a response for a fully-assembled prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates a chat exchange: session bookkeeping, knowledge
// retrieval, prompt assembly, the generative call, and interaction logging
type Service struct {
	sessions  *session.Store
	knowledge *knowledge.Store
	generator Generator
	prompts   *genai.PromptManager
	recorder  auditlog.Recorder

	contextLimit int
}

// NewService creates a chat service. The recorder may be a NopRecorder when
// no logging database is configured.
func NewService(sessions *session.Store, kb *knowledge.Store, generator Generator, prompts *genai.PromptManager, recorder auditlog.Recorder) *Service {
	if recorder == nil {
		recorder = auditlog.NopRecorder{}
	}

	return &Service{
		sessions:     sessions,
		knowledge:    kb,
		generator:    generator,
		prompts:      prompts,
		recorder:     recorder,
		contextLimit: 3,
	}
}

// Exchange is the outcome of one chat round-trip
type Exchange struct {
	SessionID uuid.UUID `json:"session_id"`
	Response  string    `json:"response"`
	Language  string    `json:"language"`
}

// Chat runs one exchange for a user. The user's active session is reused or
// created, both sides of the exchange are persisted, and the interaction is
// logged asynchronously.
func (s *Service) Chat(ctx context.Context, userID, message string) (*Exchange, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	sess, err := s.sessions.GetOrCreateActiveSession(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	language := ingest.DetectLanguage(message)

	userMsg := &session.Message{
		SessionID: sess.ID,
		Sender:    session.SenderUser,
		Text:      message,
		Language:  language,
	}
	if err := s.sessions.SaveMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	prompt := s.buildPrompt(ctx, message)

	start := time.Now()
	answer, err := s.generator.Generate(ctx, prompt)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		s.recorder.Record(auditlog.Interaction{
			SessionID: sess.ID.String(),
			Question:  message,
			Status:    auditlog.StatusError,
			LatencyMs: latency,
		})
		return &Exchange{SessionID: sess.ID}, fmt.Errorf("generation failed: %w", err)
	}

	answer = strings.TrimSpace(answer)

	botMsg := &session.Message{
		SessionID: sess.ID,
		Sender:    session.SenderBot,
		Text:      answer,
		Language:  ingest.DetectLanguage(answer),
	}
	if err := s.sessions.SaveMessage(ctx, botMsg); err != nil {
		return nil, fmt.Errorf("failed to save bot message: %w", err)
	}

	s.recorder.Record(auditlog.Interaction{
		SessionID: sess.ID.String(),
		Question:  message,
		Answer:    answer,
		Status:    auditlog.StatusSuccess,
		LatencyMs: latency,
	})

	return &Exchange{
		SessionID: sess.ID,
		Response:  answer,
		Language:  language,
	}, nil
}

// buildPrompt assembles the system prompt, any matching campus knowledge,
// and the student's question. Knowledge lookup failures degrade to a
// knowledge-free prompt.
func (s *Service) buildPrompt(ctx context.Context, message string) string {
	builder := genai.NewPromptBuilder(s.prompts.SystemPrompt())

	results, err := s.knowledge.Search(ctx, message, s.contextLimit)
	if err != nil {
		log.Printf("[CHAT]: Knowledge search failed, continuing without context: %v", err)
	} else {
		for _, result := range results {
			if result.Confidence == knowledge.ConfidenceLow {
				continue
			}
			builder.AddKnowledge(fmt.Sprintf("%s %s", result.Metadata.Question, result.Content))
		}
	}

	return builder.SetQuestion(message).Build()
}
