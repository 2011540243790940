package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"produtos-api/internal/repository/repositorytest"
	"produtos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newTestRouter mounts both handlers over real services backed by in-memory repositories.
func newTestRouter(t interface{ Helper() }) (http.Handler, *repositorytest.CategoryRepository, *repositorytest.ProductRepository) {
	t.Helper()
	categories := repositorytest.NewCategoryRepository()
	products := repositorytest.NewProductRepository(categories)

	logger := zap.NewNop()
	r := chi.NewRouter()
	NewCategoryHandler(service.NewCategoryService(categories), logger).RegisterRoutes(r)
	NewProductHandler(service.NewProductService(products, categories), logger).RegisterRoutes(r)
	return r, categories, products
}

func doRequest(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
