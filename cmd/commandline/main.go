package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"campuschat/internal/chat"
	"campuschat/internal/genai"
	"campuschat/internal/stores/database"
	"campuschat/internal/stores/knowledge"
	"campuschat/internal/stores/session"
	"campuschat/pkg/utils"
)

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Open the relational database
	db, err := database.Open(cfg.GetWithDefault("DATABASE_URL", "sqlite:///site.db"))
	if err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to open database: %v", err)
	}

	sessionStore, err := session.NewStore(db)
	if err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to initialize session store: %v", err)
	}

	knowledgeStore, err := knowledge.NewStore(db)
	if err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to initialize knowledge store: %v", err)
	}

	// Create the generative backend
	geminiKey, err := cfg.Require("GEMINI_KEY")
	if err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}

	generator, err := genai.NewClient(geminiKey, cfg.GetWithDefault("GEMINI_MODEL", genai.DefaultModel))
	if err != nil {
		log.Fatalf("[COMMANDLINE]: Failed to create generative client: %v", err)
	}

	prompts := genai.NewPromptManager(cfg.GetWithDefault("PROMPT_FILE", "prompts/system.txt"))
	service := chat.NewService(sessionStore, knowledgeStore, generator, prompts, nil)

	// Start interactive session
	if err := startInteractiveSession(context.Background(), service); err != nil {
		log.Fatalf("[COMMANDLINE]: %v", err)
	}
}

// startInteractiveSession runs the command line interface for the campus
// chatbot
func startInteractiveSession(ctx context.Context, service *chat.Service) error {
	fmt.Println("Campus FAQ chatbot started. Type 'exit' to quit.")

	// Create scanner for reading user input
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())

		if input == "exit" {
			break
		}

		if input == "" {
			continue
		}

		exchange, err := service.Chat(ctx, "commandline-user", input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		fmt.Printf("Assistant: %s\n", exchange.Response)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}
