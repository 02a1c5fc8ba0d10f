package domain

// Verdict is the security classification of a user query.
type Verdict string

const (
	VerdictValid     Verdict = "valid"
	VerdictInjection Verdict = "injection"
	VerdictUnrelated Verdict = "unrelated"
)

// Status is the terminal state of a pipeline run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorKind classifies pipeline failures for programmatic handling.
type ErrorKind string

const (
	ErrorSecurityViolation ErrorKind = "security_violation"
	ErrorUnrelatedQuery    ErrorKind = "unrelated_query"
	ErrorDatabaseExecution ErrorKind = "database_execution"
	ErrorProcessing        ErrorKind = "processing_error"
)

// GenerationErrorText is the fixed literal returned by the text-generation
// client when a model call fails. Stages check for it in-band instead of
// handling an error value.
const GenerationErrorText = "Error generating response"

// TableData is the tabular payload of an executed query. Rows always carry
// the full result set; RowCount is the true total.
type TableData struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	RowCount    int        `json:"row_count"`
	HasMoreData bool       `json:"has_more_data"`
}

// PipelineRun is the request-scoped working state of a single query,
// rebuilt per call and never shared across requests.
type PipelineRun struct {
	Status              Status           `json:"status"`
	UserQuery           string           `json:"user_query"`
	RetrievedChunks     []RetrievedChunk `json:"retrieved_chunks,omitempty"`
	SchemaContext       string           `json:"schema_context,omitempty"`
	Reasoning           string           `json:"reasoning,omitempty"`
	OriginalSQL         string           `json:"original_sql,omitempty"`
	SQLQuery            string           `json:"sql_query,omitempty"`
	WasCorrected        bool             `json:"was_corrected"`
	IsValid             bool             `json:"is_valid"`
	SecurityCheckPassed bool             `json:"security_check_passed"`
	ErrorType           ErrorKind        `json:"error_type,omitempty"`
	ErrorMessage        string           `json:"error_message,omitempty"`
	FormattedResponse   string           `json:"formatted_response,omitempty"`
	TableData           *TableData       `json:"table_data,omitempty"`
}

// ExecutionResult is the all-or-nothing outcome of running one SQL statement.
// Driver failures are reported as marker-prefixed text in ErrorText rather
// than as an error value, so callers can pattern-match the failure class.
type ExecutionResult struct {
	Columns  []string
	Rows     [][]string
	RowCount int
	// Message carries the confirmation text for non-SELECT statements.
	Message   string
	ErrorText string
}

// Failed reports whether execution produced a database or unexpected error.
func (r *ExecutionResult) Failed() bool {
	return r.ErrorText != ""
}
