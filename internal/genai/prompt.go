package genai

import (
	"fmt"
	"strings"

	"campuschat/pkg/utils"
)

// DefaultSystemPrompt is used when the prompt file is missing or empty
const DefaultSystemPrompt = "You are a helpful campus assistant for Indian colleges and universities. " +
	"Help students with fees, scholarships, timetables, and campus information. " +
	"Keep responses concise and student-friendly."

// PromptManager resolves the system prompt from a file, re-reading it on
// every request so prompt edits take effect without a restart
type PromptManager struct {
	path string
}

// NewPromptManager creates a manager for the given prompt file path
func NewPromptManager(path string) *PromptManager {
	return &PromptManager{path: path}
}

// SystemPrompt returns the current system prompt, falling back to the
// built-in campus assistant prompt
func (m *PromptManager) SystemPrompt() string {
	if m.path == "" {
		return DefaultSystemPrompt
	}
	return utils.LoadPromptWithFallback(m.path, DefaultSystemPrompt)
}

// PromptBuilder assembles the full prompt sent to Gemini: system
// instructions, matched campus knowledge, and the student's question
type PromptBuilder struct {
	systemPrompt string
	knowledge    []string
	question     string
}

// NewPromptBuilder creates a prompt builder with a base system prompt
func NewPromptBuilder(systemPrompt string) *PromptBuilder {
	return &PromptBuilder{systemPrompt: systemPrompt}
}

// AddKnowledge appends a matched knowledge snippet to the prompt
func (pb *PromptBuilder) AddKnowledge(snippet string) *PromptBuilder {
	pb.knowledge = append(pb.knowledge, snippet)
	return pb
}

// SetQuestion sets the student's question
func (pb *PromptBuilder) SetQuestion(question string) *PromptBuilder {
	pb.question = question
	return pb
}

// Build constructs the final prompt
func (pb *PromptBuilder) Build() string {
	var parts []string

	parts = append(parts, pb.systemPrompt)

	if len(pb.knowledge) > 0 {
		parts = append(parts, "\n## Campus Knowledge:")
		for _, snippet := range pb.knowledge {
			parts = append(parts, fmt.Sprintf("- %s", snippet))
		}
	}

	parts = append(parts, fmt.Sprintf("\nStudent Question: %s", pb.question))
	parts = append(parts, "\nPlease provide a helpful, concise response for this campus-related query. "+
		"If the question is in Hindi or another Indian language, respond in the same language.")

	return strings.Join(parts, "\n")
}
