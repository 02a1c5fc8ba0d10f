package service

import (
	"context"
	"fmt"
)

// ReasoningStage produces the free-text plan for building the SQL query.
// Its output is forwarded downstream and surfaced to the caller but never
// parsed.
type ReasoningStage struct {
	llm TextGenerator
}

func NewReasoningStage(llm TextGenerator) *ReasoningStage {
	return &ReasoningStage{llm: llm}
}

func (s *ReasoningStage) Reason(ctx context.Context, query, schemaContext string) string {
	prompt := fmt.Sprintf(reasoningPromptTemplate, query, schemaContext)
	return s.llm.Generate(ctx, prompt, 0.3)
}
