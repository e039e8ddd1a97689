// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator wraps a validator instance for struct tag validation.
type Validator struct {
	validate *playground.Validate
}

// New creates a Validator with the default tag rules.
func New() *Validator {
	return &Validator{validate: playground.New()}
}

// Validate implements echo.Validator. Validation failures are surfaced as
// 400 responses through the error handler.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
