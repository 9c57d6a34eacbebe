// Package validation checks decoded request payloads before they reach the
// account service.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/libauth/internal/common"
	"github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "The field '%s' is required.",
	"email":    "The field '%s' must be a valid email address.",
	"min":      "The field '%s' must be at least %s characters long.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"oneof":    "The field '%s' must be one of [%s].",
	"maxbytes": "The field '%s' must be no longer than %s bytes.",
}

// Error lists the offending fields by their JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name])
	}
	return strings.Join(msgs, " ")
}

func (e *Error) Unwrap() error {
	return common.ErrValidation
}

// Validator wraps a configured validator.Validate; it is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// bcrypt rejects passwords longer than 72 bytes; max counts runes.
	_ = v.RegisterValidation("maxbytes", maxBytes)
	return &Validator{v: v}
}

func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// Struct validates s and returns an *Error wrapping common.ErrValidation
// when any rule fails.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("Field '%s' is invalid: %s", fe.Field(), fe.Tag())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf(msg, fe.Field())
}
