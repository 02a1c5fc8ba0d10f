package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pharmetrics/askdb/internal/domain"
)

// MockSchemaManager is a mock implementation of SchemaManager
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

func TestSchemaHandler_List(t *testing.T) {
	manager := new(MockSchemaManager)
	manager.On("ListIDs", mock.Anything).Return([]string{"HCP", "MedicalReps"}, nil)

	handler := NewSchemaHandler(manager)
	req := httptest.NewRequest("GET", "/schema/list", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		SchemaChunks []string `json:"schema_chunks"`
		Count        int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"HCP", "MedicalReps"}, body.SchemaChunks)
	assert.Equal(t, 2, body.Count)
}

func TestSchemaHandler_List_Error(t *testing.T) {
	manager := new(MockSchemaManager)
	manager.On("ListIDs", mock.Anything).Return(nil, errors.New("store down"))

	handler := NewSchemaHandler(manager)
	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest("GET", "/schema/list", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSchemaHandler_Update(t *testing.T) {
	manager := new(MockSchemaManager)
	manager.On("Update", mock.Anything, "Prescriptions", "Table: Prescriptions ...").Return(nil)

	handler := NewSchemaHandler(manager)
	rec := postJSON(t, handler.Update, `{"chunk_id": "Prescriptions", "content": "Table: Prescriptions ..."}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Schema chunk 'Prescriptions' updated successfully", body["message"])
}

func TestSchemaHandler_Update_MissingFields(t *testing.T) {
	handler := NewSchemaHandler(new(MockSchemaManager))

	rec := postJSON(t, handler.Update, `{"chunk_id": "HCP"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, handler.Update, `{"content": "Table: HCP"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSchemaHandler_Delete(t *testing.T) {
	manager := new(MockSchemaManager)
	manager.On("Delete", mock.Anything, "HCP").Return(nil)

	handler := NewSchemaHandler(manager)
	rec := postJSON(t, handler.Delete, `{"chunk_id": "HCP"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Schema chunk 'HCP' deleted successfully", body["message"])
}

func TestSchemaHandler_Delete_NotFound(t *testing.T) {
	manager := new(MockSchemaManager)
	manager.On("Delete", mock.Anything, "Nope").Return(domain.ErrChunkNotFound)

	handler := NewSchemaHandler(manager)
	rec := postJSON(t, handler.Delete, `{"chunk_id": "Nope"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSchemaHandler_Clear(t *testing.T) {
	manager := new(MockSchemaManager)
	manager.On("Clear", mock.Anything).Return(nil)

	handler := NewSchemaHandler(manager)
	rec := postJSON(t, handler.Clear, ``)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "All schema chunks cleared successfully", body["message"])
}

// MockPinger is a mock implementation of Pinger
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestDBHandler_Test(t *testing.T) {
	pinger := new(MockPinger)
	pinger.On("Ping", mock.Anything).Return(nil)

	handler := NewDBHandler(pinger)
	rec := httptest.NewRecorder()
	handler.Test(rec, httptest.NewRequest("GET", "/db/test", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "connected", body["status"])
}

func TestDBHandler_Test_NotConfigured(t *testing.T) {
	handler := NewDBHandler(nil)
	rec := httptest.NewRecorder()
	handler.Test(rec, httptest.NewRequest("GET", "/db/test", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDBHandler_Test_Unreachable(t *testing.T) {
	pinger := new(MockPinger)
	pinger.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	handler := NewDBHandler(pinger)
	rec := httptest.NewRecorder()
	handler.Test(rec, httptest.NewRequest("GET", "/db/test", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
