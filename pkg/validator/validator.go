package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed rule, named by the field's JSON tag.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Message renders the field error for a notification.
func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// ValidationError is returned when a form fails local validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message())
	}
	return strings.Join(msgs, "; ")
}

// Required builds a ValidationError for a single missing field.
func Required(field string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Tag: "required"}}}
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct checks the struct tags of data and returns a *ValidationError
// when any rule fails.
func ValidateStruct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
