package knowledge

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"campuschat/internal/ingest"
	"campuschat/internal/stores/knowledge"
	"campuschat/pkg/sdk"

	"github.com/gin-gonic/gin"
)

// Documents shorter than this produce a warning in the ingest response
const minDocumentLength = 100

// Chunk size used when splitting documents for storage
const chunkLength = 500

// Controller handles knowledge base HTTP requests
type Controller struct {
	knowledge *knowledge.Store
	processor *ingest.Processor
}

// NewController creates the knowledge controller
func NewController(store *knowledge.Store, processor *ingest.Processor) *Controller {
	return &Controller{
		knowledge: store,
		processor: processor,
	}
}

// SearchDocuments handles GET requests to query the knowledge base
func (ctrl *Controller) SearchDocuments(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Query parameter 'q' is required", nil).AsGinResponse())
		return
	}

	limit := 5
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Parameter 'limit' must be an integer between 1 and 50", err).AsGinResponse())
			return
		}
		limit = parsed
	}

	results, err := ctrl.knowledge.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Search failed", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Search completed successfully", toSDKSearchResponse(query, results)).AsGinResponse())
}

// DebugSearch handles GET requests to inspect raw search scoring. Only
// mounted in development mode.
func (ctrl *Controller) DebugSearch(c *gin.Context) {
	query := c.Param("query")

	results, err := ctrl.knowledge.Search(c.Request.Context(), query, 10)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Search failed", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Debug search completed", gin.H{
		"query":            query,
		"courses_detected": knowledge.ExtractCourses(query),
		"fees_detected":    knowledge.ExtractFeeTypes(query),
		"results":          results,
	}).AsGinResponse())
}

// UploadDocument handles POST requests to ingest a campus document. The
// document arrives either as a multipart text file or as a JSON body.
func (ctrl *Controller) UploadDocument(c *gin.Context) {
	filename, text, err := readDocument(c)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not read document", err).AsGinResponse())
		return
	}

	resp := sdk.IngestResponse{Filename: filename}
	if len(text) < minDocumentLength {
		resp.Warning = "Document contains very little text; extraction may be incomplete"
	}

	entries := ctrl.processor.Parse(text)

	faqs := make([]*knowledge.FAQ, 0, len(entries))
	for _, entry := range entries {
		faqs = append(faqs, &knowledge.FAQ{
			Question:   entry.Question,
			Answer:     entry.Answer,
			Category:   entry.Category,
			Language:   entry.Language,
			SourceFile: filename,
		})
	}
	if err := ctrl.knowledge.SaveFAQs(c.Request.Context(), faqs); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to save extracted FAQs", err).AsGinResponse())
		return
	}

	var chunks []*knowledge.Chunk
	for i, content := range ingest.Chunks(text, chunkLength) {
		chunks = append(chunks, &knowledge.Chunk{
			Content:    content,
			SourceFile: filename,
			ChunkIndex: i,
		})
	}
	if err := ctrl.knowledge.SaveChunks(c.Request.Context(), chunks); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to save document chunks", err).AsGinResponse())
		return
	}

	count, err := ctrl.knowledge.CountFAQsBySource(c.Request.Context(), filename)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to count extracted FAQs", err).AsGinResponse())
		return
	}
	resp.FAQCount = count
	resp.ChunkCount = len(chunks)

	samples, err := ctrl.knowledge.SampleFAQsBySource(c.Request.Context(), filename, 3)
	if err == nil {
		for _, faq := range samples {
			resp.SampleQuestions = append(resp.SampleQuestions, faq.Question)
		}
	}

	c.JSON(sdk.NewSuccessResponse("Document processed successfully", resp).AsGinResponse())
}

// ClearDocuments handles DELETE requests to wipe the knowledge base
func (ctrl *Controller) ClearDocuments(c *gin.Context) {
	if err := ctrl.knowledge.Clear(c.Request.Context()); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to clear knowledge base", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccess("Knowledge base cleared successfully").AsGinResponse())
}

// readDocument pulls the document name and text out of the request, from a
// multipart upload when present and a JSON body otherwise
func readDocument(c *gin.Context) (string, string, error) {
	if file, err := c.FormFile("file"); err == nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".txt" && ext != ".md" {
			return "", "", fmt.Errorf("unsupported file type %q, expected .txt or .md", ext)
		}

		f, err := file.Open()
		if err != nil {
			return "", "", fmt.Errorf("failed to open upload: %w", err)
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", "", fmt.Errorf("failed to read upload: %w", err)
		}

		return filepath.Base(file.Filename), string(data), nil
	}

	var req sdk.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", "", fmt.Errorf("expected a multipart 'file' upload or a JSON body: %w", err)
	}

	return filepath.Base(req.Filename), req.Text, nil
}

// Helper method to convert internal search results to the sdk response
func toSDKSearchResponse(query string, results []*knowledge.Result) sdk.SearchResponse {
	resp := sdk.SearchResponse{
		Query:      query,
		Results:    []sdk.SearchResult{},
		TotalFound: len(results),
	}

	for _, r := range results {
		out := sdk.SearchResult{
			Content:    r.Content,
			Score:      r.Score,
			Confidence: r.Confidence,
		}
		out.Metadata.Question = r.Metadata.Question
		out.Metadata.Category = r.Metadata.Category
		out.Metadata.Language = r.Metadata.Language
		out.Metadata.SourceFile = r.Metadata.SourceFile
		out.Metadata.DocType = r.Metadata.DocType
		resp.Results = append(resp.Results, out)
	}

	return resp
}
