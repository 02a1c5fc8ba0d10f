package domain

import "time"

// SchemaChunk is a stored unit of schema description text plus its embedding,
// addressable by a stable chunk ID (the table name it describes).
type SchemaChunk struct {
	ID        string
	Content   string
	Embedding []float32
	TableName string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RetrievedChunk pairs chunk content with its distance score.
// Lower scores mean higher relevance.
type RetrievedChunk struct {
	Content string  `json:"content"`
	Score   float64 `json:"relevance_score"`
}
