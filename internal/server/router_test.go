package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pharmetrics/askdb/internal/api/handlers"
	"github.com/pharmetrics/askdb/internal/domain"
)

type MockQueryPipeline struct {
	mock.Mock
}

func (m *MockQueryPipeline) Process(ctx context.Context, query string) *domain.PipelineRun {
	args := m.Called(ctx, query)
	return args.Get(0).(*domain.PipelineRun)
}

func (m *MockQueryPipeline) ProcessWithExecution(ctx context.Context, query string) *domain.PipelineRun {
	args := m.Called(ctx, query)
	return args.Get(0).(*domain.PipelineRun)
}

type MockSchemaManager struct {
	mock.Mock
}

func (m *MockSchemaManager) Update(ctx context.Context, chunkID, content string) error {
	args := m.Called(ctx, chunkID, content)
	return args.Error(0)
}

func (m *MockSchemaManager) Delete(ctx context.Context, chunkID string) error {
	args := m.Called(ctx, chunkID)
	return args.Error(0)
}

func (m *MockSchemaManager) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSchemaManager) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newTestRouter(pipeline *MockQueryPipeline, manager *MockSchemaManager) http.Handler {
	return NewRouter(RouterConfig{
		QueryHandler:  handlers.NewQueryHandler(pipeline, false),
		SchemaHandler: handlers.NewSchemaHandler(manager),
		DBHandler:     handlers.NewDBHandler(nil),
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(new(MockQueryPipeline), new(MockSchemaManager))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRouter_DBTest_NotConfigured(t *testing.T) {
	router := newTestRouter(new(MockQueryPipeline), new(MockSchemaManager))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/db/test", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_QueryToSQL(t *testing.T) {
	pipeline := new(MockQueryPipeline)
	pipeline.On("Process", mock.Anything, "How many HCPs?").Return(&domain.PipelineRun{
		Status:   domain.StatusSuccess,
		SQLQuery: "SELECT COUNT(*) FROM HCP;",
	})

	router := newTestRouter(pipeline, new(MockSchemaManager))

	req := httptest.NewRequest("POST", "/query-to-sql", strings.NewReader(`{"query": "How many HCPs?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SELECT COUNT(*) FROM HCP;", body["sql_query"])
}

func TestRouter_QueryExecutionUnavailable(t *testing.T) {
	router := newTestRouter(new(MockQueryPipeline), new(MockSchemaManager))

	req := httptest.NewRequest("POST", "/query", strings.NewReader(`{"query": "list HCPs"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_SchemaList(t *testing.T) {
	manager := new(MockSchemaManager)
	manager.On("ListIDs", mock.Anything).Return([]string{"HCP"}, nil)

	router := newTestRouter(new(MockQueryPipeline), manager)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/schema/list", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(new(MockQueryPipeline), new(MockSchemaManager))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Endpoint not found", body["error"])
}
