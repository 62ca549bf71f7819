package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FormValidator wraps go-playground/validator and reports failures keyed by
// the form field name, so templates can render messages inline next to the
// offending input.
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator returns a FormValidator with the site's custom rules
// registered. Field names in error maps come from the `form` struct tag.
func NewFormValidator() *FormValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// password: at least one upper-case letter, one digit and one symbol.
	// Length is enforced separately with min=N.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var upper, digit, symbol bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				symbol = true
			}
		}
		return upper && digit && symbol
	})

	return &FormValidator{v: v}
}

// Validate checks the bound form and returns a field→message map, empty when
// the form is valid.
func (fv *FormValidator) Validate(form any) map[string]string {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}

	msgs := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			msgs[fe.Field()] = fieldError(fe)
		}
		return msgs
	}
	msgs["form"] = "invalid form submission"
	return msgs
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ReplaceAll(strings.TrimPrefix(fe.Field(), "account_"), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide a %s.", field)
	case "email":
		return "A valid email is required."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "password":
		return "Password must include an uppercase letter, a number and a special character."
	case "alphanum":
		return "Letters and numbers only, no spaces or special characters."
	case "gte":
		return fmt.Sprintf("Must be %s or greater.", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be %s or less.", fe.Param())
	default:
		return fmt.Sprintf("Invalid %s.", field)
	}
}
