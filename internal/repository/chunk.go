package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/pharmetrics/askdb/internal/domain"
)

// ChunkRepository persists schema-description chunks and their embeddings
// in Postgres with pgvector.
type ChunkRepository struct {
	pool *pgxpool.Pool
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{pool: pool}
}

// Upsert writes id, content, embedding, and metadata together. Existing
// chunks are fully replaced, so a stored embedding can never go stale
// relative to its content.
func (r *ChunkRepository) Upsert(ctx context.Context, chunk *domain.SchemaChunk) error {
	now := time.Now().UTC()
	createdAt := chunk.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO schema_chunks (id, content, embedding, table_name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding,
			table_name = EXCLUDED.table_name,
			updated_at = EXCLUDED.updated_at`,
		chunk.ID,
		chunk.Content,
		pgvector.NewVector(chunk.Embedding),
		chunk.TableName,
		createdAt,
		now,
	)
	return err
}

// Delete removes a single chunk by id.
func (r *ChunkRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schema_chunks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChunkNotFound
	}
	return nil
}

// ListIDs returns the ids of all stored chunks.
func (r *ChunkRepository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM schema_chunks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear drops every chunk from the collection.
func (r *ChunkRepository) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `TRUNCATE schema_chunks`)
	return err
}

// Count returns the number of stored chunks.
func (r *ChunkRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM schema_chunks`).Scan(&count)
	return count, err
}

// Nearest returns the k chunks closest to the given embedding, ordered by
// ascending L2 distance.
func (r *ChunkRepository) Nearest(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error) {
	if k <= 0 {
		k = 3
	}

	rows, err := r.pool.Query(ctx,
		`SELECT content, embedding <-> $1 AS distance
		 FROM schema_chunks
		 ORDER BY distance
		 LIMIT $2`,
		pgvector.NewVector(embedding), k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.RetrievedChunk, 0, k)
	for rows.Next() {
		var chunk domain.RetrievedChunk
		if err := rows.Scan(&chunk.Content, &chunk.Score); err != nil {
			return nil, err
		}
		results = append(results, chunk)
	}
	return results, rows.Err()
}
