package service

import (
	"strings"
	"unicode/utf8"

	"produtos-api/internal/apperror"
	"produtos-api/internal/domain"

	"github.com/shopspring/decimal"
)

// validateName checks the trimmed name, which is what gets stored.
func validateName(entity, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return apperror.Validation("%s name is required", entity)
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxNameLength {
		return apperror.Validation("%s name must not exceed %d characters", entity, domain.MaxNameLength)
	}
	return nil
}

// validatePrice accepts values in [0, domain.MaxPrice].
func validatePrice(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return apperror.Validation("%s must not be negative", field)
	}
	if value.GreaterThan(domain.MaxPrice) {
		return apperror.Validation("%s must not exceed %s", field, domain.MaxPrice.String())
	}
	return nil
}

// validateStoredPrice additionally rejects prices that would be rounded on storage.
func validateStoredPrice(field string, value decimal.Decimal) error {
	if err := validatePrice(field, value); err != nil {
		return err
	}
	if !value.Equal(value.Round(domain.PriceScale)) {
		return apperror.Validation("%s must have at most %d decimal places", field, domain.PriceScale)
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return apperror.Validation("quantity must not be negative")
	}
	if quantity > domain.MaxQuantity {
		return apperror.Validation("quantity must not exceed %d", domain.MaxQuantity)
	}
	return nil
}
