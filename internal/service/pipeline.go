package service

import (
	"context"
	"fmt"
	"log"

	"github.com/pharmetrics/askdb/internal/domain"
)

// promptSampleRows caps how many rows are handed to the formatter for
// prompt construction. The response payload always carries the full row set.
const promptSampleRows = 20

// DefaultTopK is the number of schema chunks retrieved per query.
const DefaultTopK = 3

const (
	securityViolationMessage = "This query contains inappropriate content that violates security policies. Please rephrase your request using only standard data retrieval language without any database modification commands."
	unrelatedQueryMessage    = "This question does not appear to be related to the analytics data. Please ask about the healthcare professionals or medical representative interactions stored in the database."
)

// Classifier is the security gate in front of the pipeline.
type Classifier interface {
	Classify(ctx context.Context, userText string) domain.Verdict
}

// Retriever maps a query to relevant schema chunks.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]domain.RetrievedChunk, error)
}

// Reasoner produces the free-text query-construction plan.
type Reasoner interface {
	Reason(ctx context.Context, query, schemaContext string) string
}

// Generator produces a single SQL statement.
type Generator interface {
	Generate(ctx context.Context, query, reasoning, schemaContext string) string
}

// Corrector attempts one syntactic repair pass.
type Corrector interface {
	Correct(ctx context.Context, invalidSQL, schemaContext, userQuery string) string
}

// Validator checks SQL against the target grammar.
type Validator interface {
	IsValid(sql string) bool
}

// Executor runs SQL against the analytics database.
type Executor interface {
	Execute(ctx context.Context, sql string) *domain.ExecutionResult
}

// Formatter renders execution outcomes into natural language.
type Formatter interface {
	Format(ctx context.Context, userQuery, sql string, columns []string, rows [][]string, errorMessage string, totalRows int) string
}

// Pipeline is the state machine tying the stages together:
// classify, retrieve, reason, generate, validate, correct at most once,
// then optionally execute and format.
type Pipeline struct {
	classifier Classifier
	retriever  Retriever
	reasoner   Reasoner
	generator  Generator
	corrector  Corrector
	validator  Validator
	executor   Executor
	formatter  Formatter
	topK       int
}

// PipelineConfig carries the injected stage implementations. Executor and
// Formatter may be nil when only the SQL-only entry point is used.
type PipelineConfig struct {
	Classifier Classifier
	Retriever  Retriever
	Reasoner   Reasoner
	Generator  Generator
	Corrector  Corrector
	Validator  Validator
	Executor   Executor
	Formatter  Formatter
	TopK       int
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	topK := cfg.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Pipeline{
		classifier: cfg.Classifier,
		retriever:  cfg.Retriever,
		reasoner:   cfg.Reasoner,
		generator:  cfg.Generator,
		corrector:  cfg.Corrector,
		validator:  cfg.Validator,
		executor:   cfg.Executor,
		formatter:  cfg.Formatter,
		topK:       topK,
	}
}

// Process runs the SQL-only pipeline: the run terminates after validation
// (and the at-most-one correction pass) without touching the analytics
// database. A structured terminal result is always produced; no internal
// fault escapes unclassified.
func (p *Pipeline) Process(ctx context.Context, userQuery string) (run *domain.PipelineRun) {
	run = &domain.PipelineRun{
		Status:    domain.StatusSuccess,
		UserQuery: userQuery,
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline: recovered from panic: %v", r)
			p.failProcessing(run, fmt.Errorf("panic: %v", r))
		}
	}()

	verdict := p.classifier.Classify(ctx, userQuery)
	switch verdict {
	case domain.VerdictInjection:
		log.Printf("pipeline: rejected potentially unsafe query")
		return p.reject(run, domain.ErrorSecurityViolation, securityViolationMessage)
	case domain.VerdictUnrelated:
		return p.reject(run, domain.ErrorUnrelatedQuery, unrelatedQueryMessage)
	}
	run.SecurityCheckPassed = true

	chunks, err := p.retriever.Retrieve(ctx, userQuery, p.topK)
	if err != nil {
		return p.failProcessing(run, err)
	}
	run.RetrievedChunks = chunks
	run.SchemaContext = FormatSchemaContext(chunks)
	log.Printf("pipeline: retrieved %d relevant schema chunks", len(chunks))

	run.Reasoning = p.reasoner.Reason(ctx, userQuery, run.SchemaContext)

	sql := p.generator.Generate(ctx, userQuery, run.Reasoning, run.SchemaContext)
	run.OriginalSQL = sql

	if p.validator.IsValid(sql) {
		run.SQLQuery = sql
		run.IsValid = true
		return run
	}

	log.Printf("pipeline: invalid SQL detected, attempting correction")
	corrected := p.corrector.Correct(ctx, sql, run.SchemaContext, userQuery)
	run.SQLQuery = corrected
	run.WasCorrected = true
	run.IsValid = p.validator.IsValid(corrected)
	if !run.IsValid {
		// Best-effort degrade: keep the corrected text and let execution
		// surface a concrete error if it truly cannot run.
		log.Printf("pipeline: correction still invalid, proceeding unverified")
	}
	return run
}

// ProcessWithExecution runs the full pipeline including execution of the
// final SQL and natural-language formatting of the outcome.
func (p *Pipeline) ProcessWithExecution(ctx context.Context, userQuery string) (run *domain.PipelineRun) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline: recovered from panic during execution: %v", r)
			run = &domain.PipelineRun{
				Status:    domain.StatusError,
				UserQuery: userQuery,
			}
			p.failProcessing(run, fmt.Errorf("panic: %v", r))
			run.FormattedResponse = p.formatter.Format(ctx, userQuery, "", nil, nil, run.ErrorMessage, 0)
		}
	}()

	run = p.Process(ctx, userQuery)
	if run.Status == domain.StatusError {
		if run.FormattedResponse == "" {
			run.FormattedResponse = p.formatter.Format(ctx, userQuery, "", nil, nil, run.ErrorMessage, 0)
		}
		return run
	}

	result := p.executor.Execute(ctx, run.SQLQuery)
	if result.Failed() {
		run.Status = domain.StatusError
		run.ErrorType = domain.ErrorDatabaseExecution
		run.ErrorMessage = result.ErrorText
		// The attempted SQL stays populated for full transparency.
		run.FormattedResponse = p.formatter.Format(ctx, userQuery, run.SQLQuery, nil, nil, result.ErrorText, 0)
		return run
	}

	if result.Columns == nil {
		// Non-SELECT statements produce a confirmation message only.
		run.FormattedResponse = result.Message
		return run
	}

	run.TableData = &domain.TableData{
		Columns:     result.Columns,
		Rows:        result.Rows,
		RowCount:    result.RowCount,
		HasMoreData: result.RowCount > len(result.Rows),
	}

	sample := result.Rows
	if len(sample) > promptSampleRows {
		sample = sample[:promptSampleRows]
	}
	run.FormattedResponse = p.formatter.Format(ctx, userQuery, run.SQLQuery, result.Columns, sample, "", result.RowCount)
	return run
}

func (p *Pipeline) reject(run *domain.PipelineRun, kind domain.ErrorKind, message string) *domain.PipelineRun {
	run.Status = domain.StatusError
	run.ErrorType = kind
	run.ErrorMessage = message
	run.FormattedResponse = message
	return run
}

func (p *Pipeline) failProcessing(run *domain.PipelineRun, err error) *domain.PipelineRun {
	log.Printf("pipeline: processing error: %v", err)
	run.Status = domain.StatusError
	run.ErrorType = domain.ErrorProcessing
	run.ErrorMessage = err.Error()
	return run
}

// FormatSchemaContext renders retrieved chunks in relevance order for prompt
// construction, or the fixed sentinel when nothing survived the threshold.
func FormatSchemaContext(chunks []domain.RetrievedChunk) string {
	if len(chunks) == 0 {
		return NoSchemaFound
	}

	context := "Relevant Database Schema:\n\n"
	for i, chunk := range chunks {
		context += fmt.Sprintf("Schema %d (Relevance Score: %.3f):\n%s\n\n", i+1, chunk.Score, chunk.Content)
	}
	return context
}
