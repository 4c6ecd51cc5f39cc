package utils

import (
	"fmt"
	"os"
	"strings"
)

// LoadPrompt reads prompt instructions from a file path and trims whitespace
func LoadPrompt(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", filePath, err)
	}

	return strings.TrimSpace(string(content)), nil
}

// LoadPromptWithFallback reads prompt instructions from a file path,
// returning the fallback when the file is missing or empty
func LoadPromptWithFallback(filePath, fallback string) string {
	content, err := LoadPrompt(filePath)
	if err != nil || content == "" {
		return fallback
	}
	return content
}
