//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmetrics/askdb/internal/domain"
	"github.com/pharmetrics/askdb/internal/testutil"
)

// makeEmbedding returns a 1536-dimension vector whose first component is
// set, so distances between test vectors are predictable.
func makeEmbedding(first float32) []float32 {
	embedding := make([]float32, 1536)
	embedding[0] = first
	return embedding
}

func TestChunkRepository_UpsertAndListIDs(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "HCP",
		Content:   "Table: HCP ...",
		Embedding: makeEmbedding(0.1),
		TableName: "HCP",
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "MedicalReps",
		Content:   "Table: MedicalReps ...",
		Embedding: makeEmbedding(0.9),
		TableName: "MedicalReps",
	}))

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"HCP", "MedicalReps"}, ids)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestChunkRepository_Upsert_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "HCP",
		Content:   "old content",
		Embedding: makeEmbedding(0.1),
		TableName: "HCP",
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "HCP",
		Content:   "new content",
		Embedding: makeEmbedding(0.2),
		TableName: "HCP",
	}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	chunks, err := repo.Nearest(ctx, makeEmbedding(0.2), 1)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "new content", chunks[0].Content)
}

func TestChunkRepository_Nearest_OrdersByDistance(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "near",
		Content:   "near chunk",
		Embedding: makeEmbedding(0.1),
		TableName: "near",
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "far",
		Content:   "far chunk",
		Embedding: makeEmbedding(0.9),
		TableName: "far",
	}))

	chunks, err := repo.Nearest(ctx, makeEmbedding(0.0), 2)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "near chunk", chunks[0].Content)
	assert.Equal(t, "far chunk", chunks[1].Content)
	assert.Less(t, chunks[0].Score, chunks[1].Score)
	assert.InDelta(t, 0.1, chunks[0].Score, 1e-6)
}

func TestChunkRepository_Nearest_RespectsLimit(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	for i, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
			ID:        id,
			Content:   id,
			Embedding: makeEmbedding(float32(i) * 0.1),
			TableName: id,
		}))
	}

	chunks, err := repo.Nearest(ctx, makeEmbedding(0.0), 2)
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestChunkRepository_Delete(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "HCP",
		Content:   "Table: HCP ...",
		Embedding: makeEmbedding(0.1),
		TableName: "HCP",
	}))

	require.NoError(t, repo.Delete(ctx, "HCP"))

	err := repo.Delete(ctx, "HCP")
	assert.Equal(t, domain.ErrChunkNotFound, err)
}

func TestChunkRepository_Clear(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	require.NoError(t, repo.Upsert(ctx, &domain.SchemaChunk{
		ID:        "HCP",
		Content:   "Table: HCP ...",
		Embedding: makeEmbedding(0.1),
		TableName: "HCP",
	}))

	require.NoError(t, repo.Clear(ctx))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
