package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/rentals-backend/internal/domain/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct returns per-field messages for failed tags.
func validateStruct(s any) errs.FieldErrors {
	fe := errs.FieldErrors{}
	err := validate.Struct(s)
	if err == nil {
		return fe
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fe.Add(errs.NonFieldErrors, err.Error())
		return fe
	}
	for _, e := range verrs {
		fe.Add(e.Field(), tagMessage(e))
	}
	return fe
}

func tagMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return msgRequired
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "oneof":
		return fmt.Sprintf("\"%v\" is not a valid choice.", e.Value())
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", e.Tag())
	}
}
