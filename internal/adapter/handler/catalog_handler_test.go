package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestCatalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewCatalogHandler(testCatalog()).Register(r)
	return r
}

func TestCatalogHandler(t *testing.T) {
	r := newTestCatalogRouter()

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{
			name:     "product",
			path:     "/products/1",
			wantCode: http.StatusOK,
			wantBody: `{"id":1,"title":"Tênis de Caminhada Leve Confortável","price":179.9,"image":"tenis1.jpg"}`,
		},
		{
			name:     "stock",
			path:     "/stock/2",
			wantCode: http.StatusOK,
			wantBody: `{"id":2,"amount":1}`,
		},
		{
			name:     "stock list",
			path:     "/stock",
			wantCode: http.StatusOK,
			wantBody: `[{"id":1,"amount":3},{"id":2,"amount":1}]`,
		},
		{
			name:     "unknown product",
			path:     "/products/42",
			wantCode: http.StatusNotFound,
			wantBody: `{}`,
		},
		{
			name:     "unknown stock",
			path:     "/stock/42",
			wantCode: http.StatusNotFound,
			wantBody: `{}`,
		},
		{
			name:     "invalid id",
			path:     "/products/abc",
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"invalid id"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	r := newTestCatalogRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":139.9`)
	assert.NotContains(t, rec.Body.String(), `"amount"`)
}
