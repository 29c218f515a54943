package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"technet-admin/internal/storage"
)

type MockImportRunLister struct {
	mock.Mock
}

func (m *MockImportRunLister) ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error) {
	args := m.Called(ctx, limit)
	runs, _ := args.Get(0).([]storage.ImportRun)
	return runs, args.Error(1)
}

func TestGetImportRuns(t *testing.T) {
	id := uuid.New()
	lister := new(MockImportRunLister)
	lister.On("ListImportRuns", mock.Anything, 10).Return([]storage.ImportRun{{ID: id, Filename: "a.xlsx", Status: storage.ImportStatusSubmitted}}, nil)

	rr := httptest.NewRecorder()
	GetImportRuns(slog.Default(), lister).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/imports?limit=10", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp ResponseImportRuns
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, id, resp.Runs[0].ID)
	lister.AssertExpectations(t)
}

func TestGetImportRuns_Disabled(t *testing.T) {
	rr := httptest.NewRecorder()
	GetImportRuns(slog.Default(), nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/imports", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"runs":[]`)
}

func TestGetImportRuns_Errors(t *testing.T) {
	lister := new(MockImportRunLister)
	lister.On("ListImportRuns", mock.Anything, 50).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	GetImportRuns(slog.Default(), lister).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/imports", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = httptest.NewRecorder()
	GetImportRuns(slog.Default(), lister).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/imports?limit=x", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
