package utils

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeValidator accepts 3-letter uppercase currency codes, the shape
// the rate table is keyed by. The catalogue is open-ended so this is a format
// check, not a membership check.
func currencyCodeValidator(fl validator.FieldLevel) bool {
	code, ok := fl.Field().Interface().(string)
	if !ok || len(code) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// RegisterCustomValidators wires app-specific binding tags into gin's
// validator engine. Call once at startup (and from handler tests).
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("currencycode", currencyCodeValidator)
}
