package transport

import (
	"net/http"
	"strconv"

	"produtos-api/internal/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation("%s must be an integer, got %q", name, raw)
	}
	return id, nil
}

func priceParam(r *http.Request, name string) (decimal.Decimal, error) {
	raw := chi.URLParam(r, name)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperror.Validation("%s must be a decimal number, got %q", name, raw)
	}
	return value, nil
}
