package handler

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// formErrors flattens validation failures into per-field messages for the
// templates to render inline.
func formErrors(err error) map[string]string {
	msgs := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		msgs["Form"] = "Invalid input."
		return msgs
	}
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "This field is required."
		case "email":
			msg = "Enter a valid email address."
		case "min":
			msg = fmt.Sprintf("Must be at least %s characters.", fe.Param())
		case "max":
			msg = fmt.Sprintf("Must be at most %s characters.", fe.Param())
		case "password":
			msg = "Password must contain at least one letter and one digit."
		case "url":
			msg = "Enter a valid URL."
		default:
			msg = "Invalid value."
		}
		msgs[fe.Field()] = msg
	}
	return msgs
}
