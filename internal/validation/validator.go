// Package validation wraps go-playground/validator with a shared instance and
// readable error messages.
//
//	type RegisterRequest struct {
//	    Name  string `validate:"required"`
//	    Email string `validate:"required,email"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    respondBadRequest(c, err.Error())
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/biblioteca/internal/entities"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error collects every failed rule of one struct. It matches
// entities.ErrValidation under errors.Is.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

func (e *Error) Unwrap() error { return entities.ErrValidation }

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		err := validate.RegisterValidation("material_kind", func(fl validator.FieldLevel) bool {
			return entities.MaterialKind(fl.Field().String()).Valid()
		})
		if err != nil {
			panic(fmt.Sprintf("validation: register material_kind: %v", err))
		}
	})
	return validate
}

// ValidateStruct returns nil or an *Error describing every failed field.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: translate(fe),
		}
	}
	return &Error{Fields: fields}
}

var messageTemplates = map[string]string{
	"required":      "%s is required",
	"email":         "%s must be a valid email address",
	"url":           "%s must be a valid URL",
	"material_kind": "%s must be a known material kind",
}

var messageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

func translate(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messageWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
