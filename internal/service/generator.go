package service

import (
	"context"
	"fmt"
	"strings"
)

// statementKeywords are the recognized leading keywords of a SQL statement,
// used when recovering a statement from model output that carries
// surrounding commentary.
var statementKeywords = []string{"SELECT", "WITH", "INSERT", "UPDATE", "DELETE"}

// SQLGenerator turns the user query, reasoning text, and schema context
// into a single SQL statement.
type SQLGenerator struct {
	llm TextGenerator
}

func NewSQLGenerator(llm TextGenerator) *SQLGenerator {
	return &SQLGenerator{llm: llm}
}

func (g *SQLGenerator) Generate(ctx context.Context, query, reasoning, schemaContext string) string {
	prompt := fmt.Sprintf(sqlGenerationPromptTemplate, schemaContext, reasoning, query)
	response := g.llm.Generate(ctx, prompt, 0.1)
	return extractSQL(response)
}

// extractSQL strips markdown fences and leading commentary from raw model
// output. If the text does not start with a statement keyword but one occurs
// later, everything before its first occurrence is dropped; deeper repair is
// left to the correction stage.
func extractSQL(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```sql") {
		response = strings.ReplaceAll(response, "```sql", "")
		response = strings.ReplaceAll(response, "```", "")
		response = strings.TrimSpace(response)
	} else if strings.HasPrefix(response, "```") {
		response = strings.ReplaceAll(response, "```", "")
		response = strings.TrimSpace(response)
	}

	if !startsWithStatementKeyword(response) {
		upper := strings.ToUpper(response)
		if idx := strings.Index(upper, "SELECT"); idx >= 0 {
			response = response[idx:]
		}
	}

	return strings.TrimSpace(response)
}

func startsWithStatementKeyword(s string) bool {
	upper := strings.ToUpper(s)
	for _, kw := range statementKeywords {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}
