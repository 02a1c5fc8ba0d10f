package service

import (
	"context"
	"fmt"
	"strings"
)

// formatterSampleRows caps how many rows the data-summary prompt embeds.
const formatterSampleRows = 10

// ResultFormatter renders execution outcomes into natural language. It owns
// branch selection and sample-table construction; the final prose comes from
// the text generator.
type ResultFormatter struct {
	llm TextGenerator
}

func NewResultFormatter(llm TextGenerator) *ResultFormatter {
	return &ResultFormatter{llm: llm}
}

// Format picks one of three mutually exclusive branches by input shape:
// an error explanation, a no-data response, or a data summary fed a capped
// sample table.
func (f *ResultFormatter) Format(ctx context.Context, userQuery, sql string, columns []string, rows [][]string, errorMessage string, totalRows int) string {
	if errorMessage != "" {
		prompt := fmt.Sprintf(errorFormatPromptTemplate, userQuery)
		return f.llm.Generate(ctx, prompt, 0)
	}

	if totalRows == 0 {
		prompt := fmt.Sprintf(noDataFormatPromptTemplate, userQuery)
		return f.llm.Generate(ctx, prompt, 0.3)
	}

	sample := buildDataSample(columns, rows, totalRows, formatterSampleRows)
	prompt := fmt.Sprintf(dataFormatPromptTemplate, userQuery, totalRows, sample)
	return f.llm.Generate(ctx, prompt, 0.2)
}

// buildDataSample renders header, separator, up to maxRows rows, and an
// "N more records" trailer when the sample is truncated.
func buildDataSample(columns []string, rows [][]string, totalRows, maxRows int) string {
	if len(rows) == 0 {
		return "No data available"
	}

	sample := rows
	if len(sample) > maxRows {
		sample = sample[:maxRows]
	}

	var lines []string
	header := strings.Join(columns, " | ")
	lines = append(lines, header)
	lines = append(lines, strings.Repeat("-", len(header)))

	for _, row := range sample {
		lines = append(lines, strings.Join(row, " | "))
	}

	if totalRows > len(sample) {
		lines = append(lines, fmt.Sprintf("... and %d more records", totalRows-len(sample)))
	}

	return strings.Join(lines, "\n")
}
