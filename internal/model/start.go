package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StartValidation reports which required fields of the creation form are
// missing.
type StartValidation struct {
	Valid   bool
	Missing []string
}

type startForm struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

var startValidator = newStartValidator()

func newStartValidator() *validator.Validate {
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

// ValidateStart checks the presence rules of the initial creation flow:
// name and email must be non-blank. No format checks are applied.
func ValidateStart(info PersonalInfo) *StartValidation {
	result := &StartValidation{Valid: true, Missing: []string{}}

	form := startForm{
		Name:  strings.TrimSpace(info.Name),
		Email: strings.TrimSpace(info.Email),
	}
	err := startValidator.Struct(form)
	if err == nil {
		return result
	}
	result.Valid = false
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			result.Missing = append(result.Missing, fe.Field())
		}
		return result
	}
	result.Missing = append(result.Missing, err.Error())
	return result
}
