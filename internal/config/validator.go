package config

import (
	"fmt"

	"github.com/arloliu/arhttp/internal/remote"
	"github.com/go-playground/validator/v10"
)

var defaultValidator = NewValidator()

// NewValidator returns a validator with the rules resolver configs rely on
// registered:
//   - pathformat: exactly one %s placeholder, %% as the only other escape
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("pathformat", func(fl validator.FieldLevel) bool {
		return remote.CheckFormat(fl.Field().String()) == nil
	})

	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "url":
		return "must be an absolute URL"
	case "pathformat":
		if err := remote.CheckFormat(fmt.Sprint(fe.Value())); err != nil {
			return err.Error()
		}
	}

	return "failed '" + fe.Tag() + "' validation"
}
