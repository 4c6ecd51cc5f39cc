package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"campuschat/internal/chat"
	"campuschat/internal/genai"
	"campuschat/internal/ingest"
	"campuschat/internal/stores/database"
	"campuschat/internal/stores/knowledge"
	"campuschat/internal/stores/session"
	"campuschat/pkg/sdk"
	"campuschat/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()

	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

const testSecret = "test-secret"

// stubGenerator stands in for the Gemini backend
type stubGenerator struct {
	answer string
	err    error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func newTestEngine(t *testing.T, generator chat.Generator, development bool) (*gin.Engine, Dependencies) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	sessions, err := session.NewStore(db)
	require.NoError(t, err)

	kb, err := knowledge.NewStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { kb.Close() })

	cfg := utils.NewConfig(map[string]string{
		"SECRET_KEY": testSecret,
	})
	if development {
		cfg.Set("DEVELOPMENT", "true")
	}

	prompts := genai.NewPromptManager("")
	deps := Dependencies{
		Config:    cfg,
		Chat:      chat.NewService(sessions, kb, generator, prompts, nil),
		Sessions:  sessions,
		Knowledge: kb,
		Processor: ingest.NewProcessor(nil),
	}

	return NewEngine(deps), deps
}

func doRequest(engine *gin.Engine, method, path, apiKey string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-KEY", apiKey)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) sdk.ApiResponse[T] {
	t.Helper()

	var resp sdk.ApiResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealthAndBanner(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{answer: "ok"}, false)

	t.Run("health", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("banner", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.BannerResponse](t, w)
		assert.Equal(t, sdk.StatusSuccess, resp.Status)
		assert.Equal(t, "running", resp.Data.Status)
		assert.Equal(t, Version, resp.Data.Version)
	})

	t.Run("unknown route", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/nope", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		resp := decode[any](t, w)
		assert.Equal(t, sdk.StatusError, resp.Status)
	})
}

func TestPostChat(t *testing.T) {
	t.Run("successful exchange", func(t *testing.T) {
		engine, _ := newTestEngine(t, &stubGenerator{answer: "The fee is Rs. 15,000."}, false)

		w := doRequest(engine, http.MethodPost, "/api/v1/chat", "", `{"message": "What are the fees?", "user_id": "student-1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.ChatResponse](t, w)
		assert.Equal(t, "The fee is Rs. 15,000.", resp.Data.Response)
		assert.NotEmpty(t, resp.Data.SessionID)
		assert.Equal(t, "en", resp.Data.Language)
	})

	t.Run("missing fields", func(t *testing.T) {
		engine, _ := newTestEngine(t, &stubGenerator{answer: "unused"}, false)

		w := doRequest(engine, http.MethodPost, "/api/v1/chat", "", `{"message": "hello"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("whitespace message", func(t *testing.T) {
		engine, _ := newTestEngine(t, &stubGenerator{answer: "unused"}, false)

		w := doRequest(engine, http.MethodPost, "/api/v1/chat", "", `{"message": "   ", "user_id": "student-1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("generator failure returns the fallback", func(t *testing.T) {
		engine, _ := newTestEngine(t, &stubGenerator{err: errors.New("backend down")}, false)

		w := doRequest(engine, http.MethodPost, "/api/v1/chat", "", `{"message": "What are the fees?", "user_id": "student-1"}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)

		resp := decode[sdk.ChatResponse](t, w)
		assert.Equal(t, sdk.StatusError, resp.Status)
		assert.Equal(t, chat.FallbackResponse, resp.Data.Response)
		assert.NotEmpty(t, resp.Data.SessionID)
	})
}

func TestSessionRoutes(t *testing.T) {
	engine, deps := newTestEngine(t, &stubGenerator{answer: "The fee is Rs. 15,000."}, false)

	// Create a session with one exchange
	w := doRequest(engine, http.MethodPost, "/api/v1/chat", "", `{"message": "What are the fees?", "user_id": "student-1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := decode[sdk.ChatResponse](t, w).Data.SessionID

	t.Run("get session with messages", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/sessions/"+sessionID, "", "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.Session](t, w)
		assert.Equal(t, sessionID, resp.Data.ID)
		assert.Equal(t, "student-1", resp.Data.UserID)
		require.Len(t, resp.Data.Messages, 2)
		assert.Equal(t, "user", resp.Data.Messages[0].Sender)
		assert.Equal(t, "bot", resp.Data.Messages[1].Sender)
	})

	t.Run("invalid uuid", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/sessions/not-a-uuid", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/sessions/00000000-0000-0000-0000-000000000001", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete requires the api key", func(t *testing.T) {
		w := doRequest(engine, http.MethodDelete, "/api/v1/sessions/"+sessionID, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("delete with the api key", func(t *testing.T) {
		w := doRequest(engine, http.MethodDelete, "/api/v1/sessions/"+sessionID, testSecret, "")
		require.Equal(t, http.StatusOK, w.Code)

		messages, err := deps.Sessions.GetMessages(context.Background(), mustParseUUID(t, sessionID))
		require.NoError(t, err)
		assert.Empty(t, messages)

		w = doRequest(engine, http.MethodGet, "/api/v1/sessions/"+sessionID, "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSearchDocuments(t *testing.T) {
	engine, deps := newTestEngine(t, &stubGenerator{answer: "ok"}, false)

	require.NoError(t, deps.Knowledge.SaveFAQs(context.Background(), []*knowledge.FAQ{{
		Question: "What are the fees for B.A.?",
		Answer:   "The annual fee for B.A. is Rs. 15,000.",
		Category: "fees",
		Language: "en",
	}}))

	t.Run("missing query", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/search_documents", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/search_documents?q=fees&limit=900", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("successful search", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/search_documents?q=b.a+fees", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.SearchResponse](t, w)
		assert.Equal(t, 1, resp.Data.TotalFound)
		require.Len(t, resp.Data.Results, 1)
		assert.Equal(t, "What are the fees for B.A.?", resp.Data.Results[0].Metadata.Question)
	})

	t.Run("no results", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/search_documents?q=cricket", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.SearchResponse](t, w)
		assert.Zero(t, resp.Data.TotalFound)
	})
}

func TestAdminRoutes(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{answer: "The fee is Rs. 15,000."}, false)

	t.Run("stats requires the api key", func(t *testing.T) {
		w := doRequest(engine, http.MethodGet, "/api/v1/admin/stats", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = doRequest(engine, http.MethodGet, "/api/v1/admin/stats", "wrong-key", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stats with the api key", func(t *testing.T) {
		// Generate some traffic first
		w := doRequest(engine, http.MethodPost, "/api/v1/chat", "", `{"message": "What are the fees?", "user_id": "student-1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(engine, http.MethodGet, "/api/v1/admin/stats", testSecret, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.StatsResponse](t, w)
		assert.Equal(t, int64(1), resp.Data.TotalSessions)
		assert.Equal(t, int64(1), resp.Data.UserMessages)
		assert.Equal(t, int64(1), resp.Data.BotMessages)
	})
}

func TestDocumentIngest(t *testing.T) {
	engine, _ := newTestEngine(t, &stubGenerator{answer: "ok"}, false)

	t.Run("requires the api key", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/api/v1/admin/documents", "", `{"filename": "fees.txt", "text": "irrelevant"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("json ingest extracts faqs", func(t *testing.T) {
		body := `{"filename": "fees.txt", "text": "Fee Structure:\nB.A. - Rs. 15,000\nB.Sc. - Rs. 18,000\n\nQ: What are the library timings?\nA: The library is open from 8 AM to 8 PM on weekdays and Saturdays.\n"}`

		w := doRequest(engine, http.MethodPost, "/api/v1/admin/documents", testSecret, body)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.IngestResponse](t, w)
		assert.Equal(t, "fees.txt", resp.Data.Filename)
		assert.GreaterOrEqual(t, resp.Data.FAQCount, int64(3))
		assert.NotEmpty(t, resp.Data.SampleQuestions)
		assert.Empty(t, resp.Data.Warning)
	})

	t.Run("short document warns", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/api/v1/admin/documents", testSecret, `{"filename": "tiny.txt", "text": "Too small."}`)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.IngestResponse](t, w)
		assert.NotEmpty(t, resp.Data.Warning)
	})

	t.Run("clear wipes the knowledge base", func(t *testing.T) {
		w := doRequest(engine, http.MethodDelete, "/api/v1/admin/documents", testSecret, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(engine, http.MethodGet, "/api/v1/admin/stats", testSecret, "")
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[sdk.StatsResponse](t, w)
		assert.Zero(t, resp.Data.KnowledgeFAQs)
		assert.Zero(t, resp.Data.KnowledgeChunks)
	})
}

func TestDebugSearchRoute(t *testing.T) {
	t.Run("mounted in development", func(t *testing.T) {
		engine, _ := newTestEngine(t, &stubGenerator{answer: "ok"}, true)

		w := doRequest(engine, http.MethodGet, "/api/v1/debug/search/fees", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("hidden otherwise", func(t *testing.T) {
		engine, _ := newTestEngine(t, &stubGenerator{answer: "ok"}, false)

		w := doRequest(engine, http.MethodGet, "/api/v1/debug/search/fees", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
