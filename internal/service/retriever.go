package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pharmetrics/askdb/internal/domain"
)

// NoSchemaFound is returned by Context when no stored chunk falls under the
// relevance threshold, so downstream prompts stay well-formed.
const NoSchemaFound = "No relevant schema found."

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkStore defines the repository interface for the schema-chunk collection
type ChunkStore interface {
	Upsert(ctx context.Context, chunk *domain.SchemaChunk) error
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	Nearest(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error)
}

// SchemaRetriever maps a query to the most relevant schema-description
// chunks and manages the chunk collection.
type SchemaRetriever struct {
	embedder  EmbeddingClient
	store     ChunkStore
	threshold float64
}

// DefaultDistanceThreshold is the maximum acceptable distance for a chunk
// to be considered relevant.
const DefaultDistanceThreshold = 1.75

func NewSchemaRetriever(embedder EmbeddingClient, store ChunkStore, threshold float64) *SchemaRetriever {
	if threshold <= 0 {
		threshold = DefaultDistanceThreshold
	}
	return &SchemaRetriever{
		embedder:  embedder,
		store:     store,
		threshold: threshold,
	}
}

// Retrieve returns up to k chunks in ascending-distance order, dropping any
// whose distance exceeds the threshold. A failed query embedding fails
// closed: the result set is empty rather than an error.
func (r *SchemaRetriever) Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("retriever: query embedding failed: %v", err)
		return []domain.RetrievedChunk{}, nil
	}

	candidates, err := r.store.Nearest(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk store: %w", err)
	}

	filtered := make([]domain.RetrievedChunk, 0, len(candidates))
	for _, c := range candidates {
		if c.Score <= r.threshold {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Context renders the surviving chunks into a human-readable block for
// prompt construction, preserving relevance order.
func (r *SchemaRetriever) Context(ctx context.Context, query string, k int) (string, error) {
	chunks, err := r.Retrieve(ctx, query, k)
	if err != nil {
		return "", err
	}

	return FormatSchemaContext(chunks), nil
}

// Update recomputes the embedding and upserts the chunk atomically. A failed
// embedding aborts the upsert so the prior state stays intact.
func (r *SchemaRetriever) Update(ctx context.Context, chunkID, content string) error {
	if strings.TrimSpace(chunkID) == "" {
		return domain.ErrEmptyChunkID
	}
	if strings.TrimSpace(content) == "" {
		return domain.ErrEmptyChunkBody
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, content)
	if err != nil {
		log.Printf("retriever: embedding failed for chunk %s: %v", chunkID, err)
		return domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "embedding generation failed", err)
	}

	chunk := &domain.SchemaChunk{
		ID:        chunkID,
		Content:   content,
		Embedding: embedding,
		TableName: chunkID,
	}
	if err := r.store.Upsert(ctx, chunk); err != nil {
		return fmt.Errorf("failed to upsert chunk %s: %w", chunkID, err)
	}

	log.Printf("retriever: updated schema chunk %s", chunkID)
	return nil
}

// Delete removes a single chunk by id.
func (r *SchemaRetriever) Delete(ctx context.Context, chunkID string) error {
	return r.store.Delete(ctx, chunkID)
}

// ListIDs returns the ids of all stored chunks.
func (r *SchemaRetriever) ListIDs(ctx context.Context) ([]string, error) {
	return r.store.ListIDs(ctx)
}

// Clear drops every chunk from the collection.
func (r *SchemaRetriever) Clear(ctx context.Context) error {
	return r.store.Clear(ctx)
}

// Seed populates the default schema chunks when the collection is empty.
// Chunks whose embedding cannot be computed are skipped rather than failing
// the whole seed.
func (r *SchemaRetriever) Seed(ctx context.Context) error {
	count, err := r.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count chunks: %w", err)
	}
	if count > 0 {
		log.Printf("retriever: found existing collection with %d chunks", count)
		return nil
	}

	log.Printf("retriever: collection empty, seeding default schema chunks")
	seeded := 0
	for _, chunk := range DefaultSchemaChunks() {
		if err := r.Update(ctx, chunk.ID, chunk.Content); err != nil {
			log.Printf("retriever: failed to seed chunk %s: %v", chunk.ID, err)
			continue
		}
		seeded++
	}

	if seeded == 0 {
		return domain.NewDomainError(domain.ErrCodeInternalError, "no schema chunks could be seeded")
	}
	log.Printf("retriever: seeded %d schema chunks", seeded)
	return nil
}
