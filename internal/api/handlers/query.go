package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/pharmetrics/askdb/internal/api"
	"github.com/pharmetrics/askdb/internal/domain"
)

// QueryPipeline defines the pipeline entry points consumed by the HTTP layer.
type QueryPipeline interface {
	Process(ctx context.Context, query string) *domain.PipelineRun
	ProcessWithExecution(ctx context.Context, query string) *domain.PipelineRun
}

// QueryHandler serves the natural-language query endpoints.
type QueryHandler struct {
	pipeline   QueryPipeline
	canExecute bool
}

func NewQueryHandler(pipeline QueryPipeline, canExecute bool) *QueryHandler {
	return &QueryHandler{pipeline: pipeline, canExecute: canExecute}
}

type queryRequest struct {
	Query string `json:"query"`
}

func parseQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request format", "Request must be JSON with a 'query' field")
		return "", false
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		api.Error(w, http.StatusBadRequest, "Empty query", "Query cannot be empty")
		return "", false
	}
	return query, true
}

// ToSQL handles POST /query-to-sql: the terse SQL-only response.
func (h *QueryHandler) ToSQL(w http.ResponseWriter, r *http.Request) {
	query, ok := parseQuery(w, r)
	if !ok {
		return
	}

	log.Printf("handler: received query: %s", query)
	run := h.pipeline.Process(r.Context(), query)

	if run.Status == domain.StatusError {
		api.JSON(w, api.RunStatusToHTTP(run), map[string]string{
			"error":         "Processing failed",
			"error_type":    string(run.ErrorType),
			"error_message": run.ErrorMessage,
		})
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"sql_query": run.SQLQuery})
}

// ToSQLDetailed handles POST /query-to-sql/detailed: the full pipeline run
// with all intermediate artifacts.
func (h *QueryHandler) ToSQLDetailed(w http.ResponseWriter, r *http.Request) {
	query, ok := parseQuery(w, r)
	if !ok {
		return
	}

	log.Printf("handler: received detailed query request: %s", query)
	run := h.pipeline.Process(r.Context(), query)
	api.JSON(w, api.RunStatusToHTTP(run), run)
}

// Query handles POST /query: full pipeline with execution and
// natural-language formatting.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	if !h.canExecute {
		api.Error(w, http.StatusServiceUnavailable, "Execution unavailable", "analytics database not configured: ASKDB_ANALYTICS_DSN required")
		return
	}

	query, ok := parseQuery(w, r)
	if !ok {
		return
	}

	log.Printf("handler: received execution query: %s", query)
	run := h.pipeline.ProcessWithExecution(r.Context(), query)
	api.JSON(w, api.RunStatusToHTTP(run), run)
}
