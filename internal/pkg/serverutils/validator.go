package serverutils

import (
	"errors"
	"fmt"

	"quicknote-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the struct's validate tags and reports the first
// failing field as a validation error. Business rules with dedicated
// failure codes live in the services, not in tags.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		f := ve[0]
		return apperror.Validation(fmt.Sprintf("field %s failed on rule %s", f.Field(), f.Tag()))
	}
	return apperror.Validation("invalid request body")
}
