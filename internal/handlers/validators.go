package handlers

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/fx_reserve_ledger/internal/core/domain"
)

var registerOnce sync.Once

// validateCurrency accepts the currencies a branch can hold in reserve, case-insensitively.
func validateCurrency(fl validator.FieldLevel) bool {
	_, err := domain.ParseCurrencyCode(fl.Field().String())
	return err == nil
}

// RegisterValidators installs the custom binding tags used by the request DTOs.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("currency", validateCurrency)
		}
	})
}
