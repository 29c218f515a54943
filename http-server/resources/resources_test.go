package resources

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"technet-admin/internal/storage"
	"technet-admin/internal/technet"
)

type MockOperators struct {
	mock.Mock
}

func (m *MockOperators) List(ctx context.Context, params technet.ListParams) (*technet.Page[storage.Operator], error) {
	args := m.Called(ctx, params)
	p, _ := args.Get(0).(*technet.Page[storage.Operator])
	return p, args.Error(1)
}

func (m *MockOperators) Get(ctx context.Context, id string) (*storage.Operator, error) {
	args := m.Called(ctx, id)
	op, _ := args.Get(0).(*storage.Operator)
	return op, args.Error(1)
}

func (m *MockOperators) Create(ctx context.Context, item storage.Operator) (*storage.Operator, error) {
	args := m.Called(ctx, item)
	op, _ := args.Get(0).(*storage.Operator)
	return op, args.Error(1)
}

func (m *MockOperators) Update(ctx context.Context, id string, item storage.Operator) (*storage.Operator, error) {
	args := m.Called(ctx, id, item)
	op, _ := args.Get(0).(*storage.Operator)
	return op, args.Error(1)
}

func (m *MockOperators) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func newRouter(res ResourceAPI[storage.Operator]) *chi.Mux {
	r := chi.NewRouter()
	Mount[storage.Operator](r, "/api/operadores", slog.Default(), res)
	return r
}

func TestList(t *testing.T) {
	res := new(MockOperators)
	res.On("List", mock.Anything, technet.ListParams{
		Page:     2,
		PageSize: 20,
		Search:   "cla",
		Filters:  map[string]string{"id_ope": "3"},
	}).Return(&technet.Page[storage.Operator]{Count: 21, Results: []storage.Operator{{ID: 3, Name: "Claro"}}}, nil)

	rr := httptest.NewRecorder()
	newRouter(res).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/operadores/?page=2&search=cla&id_ope=3", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var page technet.Page[storage.Operator]
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &page))
	assert.Equal(t, 21, page.Count)
	assert.Equal(t, "Claro", page.Results[0].Name)
	res.AssertExpectations(t)
}

func TestList_InvalidPage(t *testing.T) {
	res := new(MockOperators)

	rr := httptest.NewRecorder()
	newRouter(res).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/operadores/?page=0", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	res.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGet_NotFound(t *testing.T) {
	res := new(MockOperators)
	res.On("Get", mock.Anything, "42").Return(nil, technet.ErrNotFound)

	rr := httptest.NewRecorder()
	newRouter(res).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/operadores/42", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreate(t *testing.T) {
	res := new(MockOperators)
	res.On("Create", mock.Anything, storage.Operator{Name: "Tigo"}).Return(&storage.Operator{ID: 9, Name: "Tigo"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/operadores/", strings.NewReader(`{"nombre_operador":"Tigo"}`))
	rr := httptest.NewRecorder()
	newRouter(res).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id_ope":9`)
	res.AssertExpectations(t)
}

func TestCreate_InvalidJSON(t *testing.T) {
	res := new(MockOperators)

	rr := httptest.NewRecorder()
	newRouter(res).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/operadores/", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	res.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_ValidationError(t *testing.T) {
	res := new(MockOperators)
	res.On("Update", mock.Anything, "9", storage.Operator{ID: 9}).
		Return(nil, &technet.APIError{StatusCode: 400, Message: `{"nombre_operador":["Este campo no puede estar en blanco."]}`})

	req := httptest.NewRequest(http.MethodPut, "/api/operadores/9", strings.NewReader(`{"id_ope":9,"nombre_operador":""}`))
	rr := httptest.NewRecorder()
	newRouter(res).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "en blanco")
}

func TestDelete(t *testing.T) {
	res := new(MockOperators)
	res.On("Delete", mock.Anything, "9").Return(nil)

	rr := httptest.NewRecorder()
	newRouter(res).ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/operadores/9", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	res.AssertExpectations(t)
}
