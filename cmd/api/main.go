package main

import (
	"log"
	"os"

	"campuschat/internal/api"
	"campuschat/internal/chat"
	"campuschat/internal/genai"
	"campuschat/internal/ingest"
	"campuschat/internal/maintenance"
	"campuschat/internal/stores/auditlog"
	"campuschat/internal/stores/database"
	"campuschat/internal/stores/knowledge"
	"campuschat/internal/stores/session"
	"campuschat/pkg/utils"
)

// Start the API server
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
		log.Fatalf("[API-MAIN]: Failed to open database: %v", err)
	}

	sessionStore, err := session.NewStore(db)
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to initialize session store: %v", err)
	}

	knowledgeStore, err := knowledge.NewStore(db)
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to initialize knowledge store: %v", err)
	}

	// Open the separate logging database. Chat still works without it.
	var recorder auditlog.Recorder = auditlog.NopRecorder{}
	var logStore *auditlog.Store
	if path := cfg.GetWithDefault("SQLITE_LOG_DB", "db.sqlite3"); path != "" {
		logStore, err = auditlog.NewStore(path)
		if err != nil {
			log.Printf("[API-MAIN]: Logging database unavailable, continuing without it: %v", err)
		} else {
			recorder = logStore
			defer logStore.Close()
		}
	}

	// Create the generative backend
	geminiKey, err := cfg.Require("GEMINI_KEY")
	if err != nil {
		log.Fatalf("[API-MAIN]: %v", err)
	}

	generator, err := genai.NewClient(geminiKey, cfg.GetWithDefault("GEMINI_MODEL", genai.DefaultModel))
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to create generative client: %v", err)
	}

	// Ingest rules may be customized via a YAML file
	rules, err := ingest.LoadRules(cfg.Get("RULES_FILE"))
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to load ingest rules: %v", err)
	}

	prompts := genai.NewPromptManager(cfg.GetWithDefault("PROMPT_FILE", "prompts/system.txt"))
	chatService := chat.NewService(sessionStore, knowledgeStore, generator, prompts, recorder)

	// Start scheduled maintenance
	jobs := maintenance.New(sessionStore, logStore)
	if err := jobs.Start(); err != nil {
		log.Fatalf("[API-MAIN]: Failed to start maintenance jobs: %v", err)
	}
	defer jobs.Stop()

	// Start the server
	err = api.Start(api.Dependencies{
		Config:    cfg,
		Chat:      chatService,
		Sessions:  sessionStore,
		Knowledge: knowledgeStore,
		Processor: ingest.NewProcessor(rules),
	})
	if err != nil {
		log.Fatalf("[API-MAIN]: Failed to start server: %v", err)
	}
}
