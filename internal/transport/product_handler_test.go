package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"produtos-api/internal/repository/repositorytest"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, router http.Handler, name string) {
	t.Helper()
	rec := doRequest(router, http.MethodPost, "/categoria", fmt.Sprintf(`{"name":%q}`, name))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func createProduct(t *testing.T, router http.Handler, body string) ProductResponse {
	t.Helper()
	rec := doRequest(router, http.MethodPost, "/produto", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created
}

func decodeProducts(t *testing.T, body []byte) []ProductResponse {
	t.Helper()
	var products []ProductResponse
	require.NoError(t, json.Unmarshal(body, &products))
	return products
}

func productIDs(products []ProductResponse) []int64 {
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func TestProductHandler_Create(t *testing.T) {
	router, _, _ := newTestRouter(t)
	seedCategory(t, router, "Bebidas")

	rec := doRequest(router, http.MethodPost, "/produto",
		`{"name":"Suco","price":12.50,"quantity":3,"category_id":1}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/produto/1", rec.Header().Get("Location"))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, 12.5, raw["price"], "price is serialized as a JSON number")
	assert.Equal(t, "Bebidas", raw["category_name"])
	assert.Equal(t, float64(1), raw["category_id"])
}

func TestProductHandler_CreateRejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{
			name:   "unknown category",
			body:   `{"name":"Suco","price":1,"quantity":1,"category_id":9}`,
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "negative price",
			body:   `{"name":"Suco","price":-0.01,"quantity":1,"category_id":1}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "price above ceiling",
			body:   `{"name":"Suco","price":10000000000000000.01,"quantity":1,"category_id":1}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "negative quantity",
			body:   `{"name":"Suco","price":1,"quantity":-1,"category_id":1}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "quantity above column range",
			body:   `{"name":"Suco","price":1,"quantity":2147483648,"category_id":1}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "price with three decimal places",
			body:   `{"name":"Suco","price":5.499,"quantity":1,"category_id":1}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "missing quantity",
			body:   `{"name":"Suco","price":1,"category_id":1}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "blank name",
			body:   `{"name":"  ","price":1,"quantity":1,"category_id":1}`,
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, products := newTestRouter(t)
			seedCategory(t, router, "Bebidas")

			rec := doRequest(router, http.MethodPost, "/produto", tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec.Body.Bytes()).Code)
			assert.Empty(t, products.Products)
		})
	}
}

func TestProductHandler_NameLongerThanColumn(t *testing.T) {
	router, _, products := newTestRouter(t)
	seedCategory(t, router, "Bebidas")

	body := fmt.Sprintf(`{"name":%q,"price":1,"quantity":1,"category_id":1}`, strings.Repeat("a", 256))
	rec := doRequest(router, http.MethodPost, "/produto", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec.Body.Bytes()).Code)
	assert.Empty(t, products.Products)
}

func TestProductHandler_CreateResponseMatchesStoredRecord(t *testing.T) {
	router, _, _ := newTestRouter(t)
	seedCategory(t, router, "Bebidas")

	created := createProduct(t, router, `{"name":"Suco","price":5.50,"quantity":2147483647,"category_id":1}`)

	rec := doRequest(router, http.MethodGet, fmt.Sprintf("/produto/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))

	assert.True(t, created.Price.Equal(fetched.Price), "created %s, fetched %s", created.Price, fetched.Price)
	assert.Equal(t, created.Quantity, fetched.Quantity)
	assert.Equal(t, 2147483647, fetched.Quantity)
}

func TestProductHandler_PriceBoundariesAccepted(t *testing.T) {
	router, _, _ := newTestRouter(t)
	seedCategory(t, router, "Bebidas")

	free := createProduct(t, router, `{"name":"Amostra","price":0,"quantity":1,"category_id":1}`)
	top := createProduct(t, router, `{"name":"Raro","price":10000000000000000,"quantity":1,"category_id":1}`)

	assert.True(t, free.Price.IsZero())
	assert.True(t, top.Price.Equal(decimal.New(1, 16)))
}

func TestProductHandler_ListsReportEmptyAsNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)
	seedCategory(t, router, "Bebidas")

	for _, path := range []string{
		"/produto",
		"/produto/emEstoque",
		"/produto/esgotado",
		"/produto/categoria/1",
		"/produto/precoAcima/0",
		"/produto/precoAbaixo/100",
	} {
		rec := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestProductHandler_Filters(t *testing.T) {
	router, _, _ := newTestRouter(t)
	seedCategory(t, router, "Bebidas")
	seedCategory(t, router, "Frios")

	createProduct(t, router, `{"name":"Agua","price":2,"quantity":10,"category_id":1}`)
	createProduct(t, router, `{"name":"Suco","price":10,"quantity":0,"category_id":1}`)
	createProduct(t, router, `{"name":"Queijo","price":35.9,"quantity":4,"category_id":2}`)

	tests := []struct {
		path string
		want []int64
	}{
		{path: "/produto", want: []int64{1, 2, 3}},
		{path: "/produto/emEstoque", want: []int64{1, 3}},
		{path: "/produto/esgotado", want: []int64{2}},
		{path: "/produto/categoria/2", want: []int64{3}},
		{path: "/produto/precoAcima/10", want: []int64{2, 3}},
		{path: "/produto/precoAbaixo/10", want: []int64{1, 2}},
		{path: "/produto/precoAbaixo/10.00", want: []int64{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doRequest(router, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, productIDs(decodeProducts(t, rec.Body.Bytes())))
		})
	}
}

func TestProductHandler_BadPathParameters(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for _, path := range []string{
		"/produto/abc",
		"/produto/categoria/abc",
		"/produto/precoAcima/dez",
		"/produto/precoAbaixo/1e",
		"/produto/precoAcima/-1",
	} {
		rec := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec.Body.Bytes()).Code, path)
	}
}

func TestProductHandler_ListByUnknownCategory(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/produto/categoria/5", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeError(t, rec.Body.Bytes()).Message, "category with id 5")
}

func TestProductHandler_UpdateAndDelete(t *testing.T) {
	router, _, products := newTestRouter(t)
	seedCategory(t, router, "Bebidas")
	seedCategory(t, router, "Frios")
	createProduct(t, router, `{"name":"Suco","price":10,"quantity":1,"category_id":1}`)

	rec := doRequest(router, http.MethodPut, "/produto/1",
		`{"name":"Queijo","price":20.5,"quantity":0,"category_id":2}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodGet, "/produto/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "Queijo", fetched.Name)
	assert.Equal(t, "Frios", fetched.CategoryName)
	assert.Equal(t, 0, fetched.Quantity)

	rec = doRequest(router, http.MethodPut, "/produto/1",
		`{"name":"Queijo","price":20.5,"quantity":0,"category_id":9}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int64(2), products.Products[1].CategoryID)

	rec = doRequest(router, http.MethodPut, "/produto/8",
		`{"name":"Queijo","price":20.5,"quantity":0,"category_id":2}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/produto/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodGet, "/produto/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/produto/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_StoreFailure(t *testing.T) {
	router, _, products := newTestRouter(t)
	products.Err = repositorytest.ErrStoreDown

	rec := doRequest(router, http.MethodGet, "/produto", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "STORE_ERROR", decodeError(t, rec.Body.Bytes()).Code)
}

// Every created product shows up in exactly one of the stock listings.
func TestProperty_StockListingsPartitionProducts(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("each product is either in stock or sold out", prop.ForAll(
		func(quantities []int) bool {
			router, _, _ := newTestRouter(t)
			seedCategory(t, router, "Geral")

			for i, q := range quantities {
				body := fmt.Sprintf(`{"name":"p%d","price":1,"quantity":%d,"category_id":1}`, i, q)
				if doRequest(router, http.MethodPost, "/produto", body).Code != http.StatusCreated {
					return false
				}
			}

			seen := make(map[int64]int)
			for _, path := range []string{"/produto/emEstoque", "/produto/esgotado"} {
				rec := doRequest(router, http.MethodGet, path, "")
				if rec.Code == http.StatusNotFound {
					continue
				}
				var products []ProductResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
					return false
				}
				for _, p := range products {
					if (path == "/produto/emEstoque") != (p.Quantity > 0) {
						return false
					}
					seen[p.ID]++
				}
			}

			if len(seen) != len(quantities) {
				return false
			}
			for _, count := range seen {
				if count != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(8, gen.IntRange(0, 3)),
	))

	properties.TestingRun(t)
}
