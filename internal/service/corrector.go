package service

import (
	"context"
	"fmt"
	"strings"
)

// SQLCorrector attempts a single repair pass over syntactically invalid SQL.
// The result is best-effort: the pipeline proceeds with it whether or not
// the repair actually parses.
type SQLCorrector struct {
	llm TextGenerator
}

func NewSQLCorrector(llm TextGenerator) *SQLCorrector {
	return &SQLCorrector{llm: llm}
}

func (c *SQLCorrector) Correct(ctx context.Context, invalidSQL, schemaContext, userQuery string) string {
	prompt := fmt.Sprintf(sqlCorrectionPromptTemplate, schemaContext, userQuery, invalidSQL)
	response := c.llm.Generate(ctx, prompt, 0.1)
	return cleanCorrectedSQL(response)
}

// cleanCorrectedSQL extracts exactly one statement from model output.
// It scans line by line, starts collecting at the first line whose leading
// token is a statement keyword, and stops at the first line ending in a
// semicolon. If no keyword line exists it falls back to the first SELECT
// occurrence truncated at its first semicolon, and failing that passes the
// trimmed response through. A missing terminator is always appended.
func cleanCorrectedSQL(response string) string {
	response = strings.TrimSpace(response)

	if strings.Contains(response, "```sql") {
		parts := strings.SplitN(response, "```sql", 2)
		response = strings.TrimSpace(strings.SplitN(parts[1], "```", 2)[0])
	} else if strings.Contains(response, "```") {
		parts := strings.Split(response, "```")
		if len(parts) >= 2 {
			response = strings.TrimSpace(parts[1])
		}
	}

	var sqlLines []string
	started := false
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if startsWithStatementKeyword(line) {
			started = true
		}

		if started {
			sqlLines = append(sqlLines, line)
			if strings.HasSuffix(line, ";") {
				break
			}
		}
	}

	if len(sqlLines) == 0 {
		upper := strings.ToUpper(response)
		if idx := strings.Index(upper, "SELECT"); idx >= 0 {
			candidate := response[idx:]
			if end := strings.Index(candidate, ";"); end >= 0 {
				candidate = candidate[:end+1]
			}
			sqlLines = []string{strings.TrimSpace(candidate)}
		}
	}

	corrected := strings.TrimSpace(response)
	if len(sqlLines) > 0 {
		corrected = strings.Join(sqlLines, " ")
	}

	if corrected != "" && !strings.HasSuffix(corrected, ";") {
		corrected += ";"
	}

	return corrected
}
