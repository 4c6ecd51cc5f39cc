package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client wraps calls to the campus chatbot backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an API client. The apiKey is only needed for the admin
// surface and may be empty for chat and search.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Chat sends one message and returns the bot's reply
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var out ApiResponse[ChatResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/chat", req, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// GetSession retrieves a session with its messages by UUID
func (c *Client) GetSession(ctx context.Context, uuid string) (*Session, error) {
	path := fmt.Sprintf("/api/v1/sessions/%s", uuid)

	var out ApiResponse[Session]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	if out.Status == StatusError {
		return nil, fmt.Errorf("error getting session (%s): %v", out.Message, out.Error)
	}

	return &out.Data, nil
}

// DeleteSession removes a session and its messages (admin key required)
func (c *Client) DeleteSession(ctx context.Context, uuid string) error {
	path := fmt.Sprintf("/api/v1/sessions/%s", uuid)

	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// SearchDocuments queries the knowledge base
func (c *Client) SearchDocuments(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	path := "/api/v1/search_documents?q=" + url.QueryEscape(query)
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}

	var out ApiResponse[SearchResponse]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// Stats retrieves admin usage statistics (admin key required)
func (c *Client) Stats(ctx context.Context) (*StatsResponse, error) {
	var out ApiResponse[StatsResponse]
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/admin/stats", nil, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// IngestDocument submits a document's text for FAQ extraction (admin key
// required)
func (c *Client) IngestDocument(ctx context.Context, req *IngestRequest) (*IngestResponse, error) {
	var out ApiResponse[IngestResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/admin/documents", req, &out); err != nil {
		return nil, err
	}

	return &out.Data, nil
}

// doJSON is a helper to perform JSON requests against the backend
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("[SDK]: backend '%s %s' failed: %d: %s", method, path, resp.StatusCode, string(b))
	}

	if out == nil {
		return nil
	}

	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
