package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator checks request bodies before anything is sent upstream.
type Validator interface {
	Validate(interface{}) error
}

// FieldError is one field-level message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every failing field of one request.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a message for field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Err returns e when it holds any field errors, nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Merge appends the field errors of err, or a generic entry when err is
// not a *ValidationError.
func (e *ValidationError) Merge(err error) {
	if err == nil {
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		e.Fields = append(e.Fields, ve.Fields...)
		return
	}
	e.Add("", err.Error())
}

const passwordTag = "password"

type validator struct {
	v *playground.Validate
}

func New() Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(f reflect.Value) interface{} {
		if d, ok := f.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation(passwordTag, func(fl playground.FieldLevel) bool {
		return len(PasswordProblems(fl.Field().String())) == 0
	}); err != nil {
		panic(fmt.Sprintf("validator: register %q: %v", passwordTag, err))
	}
	return &validator{v: v}
}

func (v *validator) Validate(obj interface{}) error {
	err := v.v.Struct(obj)
	if err == nil {
		return nil
	}
	var errs playground.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("failed to validate: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range errs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case passwordTag:
		return strings.Join(PasswordProblems(fmt.Sprint(fe.Value())), " ")
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

// PasswordProblems lists every strength rule pwd breaks.
func PasswordProblems(pwd string) []string {
	var upper, lower, digit, special bool
	for _, r := range pwd {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}
	var problems []string
	if len(pwd) < 8 {
		problems = append(problems, "Password must be at least 8 characters.")
	}
	if !upper {
		problems = append(problems, "Must include an uppercase letter.")
	}
	if !lower {
		problems = append(problems, "Must include a lowercase letter.")
	}
	if !digit {
		problems = append(problems, "Must include a number.")
	}
	if !special {
		problems = append(problems, "Must include a special character.")
	}
	return problems
}

// ContainsIdentity reports whether pwd contains name or the local part of
// email, ignoring case and whitespace.
func ContainsIdentity(pwd, name, email string) bool {
	norm := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return unicode.ToLower(r)
		}, s)
	}
	p := norm(pwd)
	n := norm(name)
	local, _, _ := strings.Cut(email, "@")
	e := norm(local)
	return (n != "" && strings.Contains(p, n)) || (e != "" && strings.Contains(p, e))
}
