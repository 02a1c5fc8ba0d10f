package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pharmetrics/askdb/internal/api"
	"github.com/pharmetrics/askdb/internal/domain"
)

// SchemaManager defines the chunk-administration operations consumed by the
// HTTP layer.
type SchemaManager interface {
	Update(ctx context.Context, chunkID, content string) error
	Delete(ctx context.Context, chunkID string) error
	ListIDs(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// SchemaHandler serves the schema-chunk administration endpoints.
type SchemaHandler struct {
	manager SchemaManager
}

func NewSchemaHandler(manager SchemaManager) *SchemaHandler {
	return &SchemaHandler{manager: manager}
}

// List handles GET /schema/list.
func (h *SchemaHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.manager.ListIDs(r.Context())
	if err != nil {
		log.Printf("handler: failed to list schema chunks: %v", err)
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"schema_chunks": ids,
		"count":         len(ids),
	})
}

type updateChunkRequest struct {
	ChunkID string `json:"chunk_id"`
	Content string `json:"content"`
}

// Update handles POST /schema/update: full-replace upsert of one chunk.
func (h *SchemaHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request format", "Request must be JSON")
		return
	}

	if strings.TrimSpace(req.ChunkID) == "" || strings.TrimSpace(req.Content) == "" {
		api.Error(w, http.StatusBadRequest, "Missing parameters", "Request body must contain 'chunk_id' and 'content' fields")
		return
	}

	if err := h.manager.Update(r.Context(), req.ChunkID, req.Content); err != nil {
		log.Printf("handler: failed to update schema chunk %s: %v", req.ChunkID, err)
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Schema chunk '%s' updated successfully", req.ChunkID),
	})
}

type deleteChunkRequest struct {
	ChunkID string `json:"chunk_id"`
}

// Delete handles POST /schema/delete.
func (h *SchemaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request format", "Request must be JSON")
		return
	}

	if strings.TrimSpace(req.ChunkID) == "" {
		api.Error(w, http.StatusBadRequest, "Missing parameters", "Request body must contain a 'chunk_id' field")
		return
	}

	if err := h.manager.Delete(r.Context(), req.ChunkID); err != nil {
		if err == domain.ErrChunkNotFound {
			api.HandleError(w, err)
			return
		}
		log.Printf("handler: failed to delete schema chunk %s: %v", req.ChunkID, err)
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Schema chunk '%s' deleted successfully", req.ChunkID),
	})
}

// Clear handles POST /schema/clear. Destructive: drops every stored chunk.
func (h *SchemaHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Clear(r.Context()); err != nil {
		log.Printf("handler: failed to clear schema chunks: %v", err)
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{
		"message": "All schema chunks cleared successfully",
	})
}
