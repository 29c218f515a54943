package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"technet-admin/internal/storage"
	"technet-admin/internal/technet"
)

type MockPager struct {
	mock.Mock
}

func (m *MockPager) PageInstallations(ctx context.Context, filter storage.InstallationFilter) (*technet.Page[storage.Installation], error) {
	args := m.Called(ctx, filter)
	if p := args.Get(0); p != nil {
		return p.(*technet.Page[storage.Installation]), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestGetGroupedInstallations(t *testing.T) {
	pager := new(MockPager)
	pager.On("PageInstallations", mock.Anything, storage.InstallationFilter{
		Page:         2,
		PageSize:     20,
		TechnicianID: "7",
		DateFrom:     "2024-01-01",
	}).Return(&technet.Page[storage.Installation]{
		Count: 23,
		Results: []storage.Installation{
			{ID: 1, OrderNumber: "OT1", Total: decimal.NewFromInt(10), TotalCompany: decimal.NewFromInt(20)},
			{ID: 2, OrderNumber: "OT1_DUP1", Total: decimal.NewFromInt(5), TotalCompany: decimal.NewFromInt(5)},
			{ID: 3, OrderNumber: "OT2", Total: decimal.NewFromInt(1), TotalCompany: decimal.NewFromInt(1)},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/instalaciones/grouped?page=2&id_tecnico=7&fecha_inicio=2024-01-01", nil)
	rr := httptest.NewRecorder()
	GetGroupedInstallations(slog.Default(), pager).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Count      int    `json:"count"`
		TotalCount int    `json:"total_count"`
		Total      string `json:"total"`
		Groups     []struct {
			Base      string                 `json:"base_ot"`
			Agrupada  bool                   `json:"agrupada"`
			Total     string                 `json:"total"`
			Empresa   string                 `json:"valor_total_empresa"`
			Instances []storage.Installation `json:"instalaciones"`
		} `json:"groups"`
	}
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))

	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 23, resp.TotalCount)
	assert.Equal(t, "16", resp.Total)
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "OT1", resp.Groups[0].Base)
	assert.True(t, resp.Groups[0].Agrupada)
	assert.Equal(t, "15", resp.Groups[0].Total)
	assert.Equal(t, "25", resp.Groups[0].Empresa)
	assert.Len(t, resp.Groups[0].Instances, 2)
	assert.False(t, resp.Groups[1].Agrupada)

	pager.AssertExpectations(t)
}

func TestGetGroupedInstallations_InvalidDate(t *testing.T) {
	pager := new(MockPager)

	req := httptest.NewRequest(http.MethodGet, "/api/instalaciones/grouped?fecha_fin=15/03/2024", nil)
	rr := httptest.NewRecorder()
	GetGroupedInstallations(slog.Default(), pager).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	pager.AssertNotCalled(t, "PageInstallations", mock.Anything, mock.Anything)
}

func TestGetGroupedInstallations_BackendError(t *testing.T) {
	pager := new(MockPager)
	pager.On("PageInstallations", mock.Anything, mock.Anything).Return(nil, technet.ErrUnauthorized)

	rr := httptest.NewRecorder()
	GetGroupedInstallations(slog.Default(), pager).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
