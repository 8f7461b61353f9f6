package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// FieldError describes one invalid request field, shaped like the detail
// entries FastAPI clients already understand.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError collects every invalid field of a request body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(f.Loc[1:], "."), f.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the Optional type hook, json field naming and
// the custom tags on gin's validator engine. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("binding validator is not go-playground/validator")
			return
		}
		registerErr = register(v)
	})
	return registerErr
}

func register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(optionalValue,
		Optional[string]{}, Optional[int]{}, Optional[uint]{}, Optional[float64]{},
		Optional[decimal.Decimal]{}, Optional[Date]{})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("enum", enum); err != nil {
		return err
	}
	return v.RegisterValidation("email_or_blank", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || v.Var(s, "email") == nil
	})
}

// optionalValue hands the validator nil for absent or null fields and a
// pointer to the value otherwise, so required means present and non-null.
func optionalValue(field reflect.Value) interface{} {
	if o, ok := field.Interface().(interface{ validationValue() interface{} }); ok {
		return o.validationValue()
	}
	return nil
}

// enum accepts any of the space separated values in the param, ignoring case
// and surrounding blanks.
func enum(fl validator.FieldLevel) bool {
	got := normalizeStatus(fl.Field().String())
	for _, allowed := range strings.Fields(fl.Param()) {
		if got == allowed {
			return true
		}
	}
	return false
}

// Validate runs the binding rules on v outside of a request.
func Validate(v interface{}) error {
	if err := RegisterValidators(); err != nil {
		return err
	}
	err := binding.Validator.ValidateStruct(v)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs)
	}
	return err
}

// NewValidationError converts validator failures into body field errors.
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fieldError(fe))
	}
	return &ValidationError{Fields: fields}
}

func fieldError(fe validator.FieldError) FieldError {
	out := FieldError{Loc: []string{"body", fe.Field()}}
	switch fe.Tag() {
	case "required":
		out.Msg, out.Type = "field required", "value_error.missing"
	case "notblank":
		out.Msg, out.Type = "ensure this value has at least 1 characters", "value_error.any_str.min_length"
	case "max":
		out.Msg = fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
		out.Type = "value_error.any_str.max_length"
	case "gte":
		out.Msg = "ensure this value is greater than or equal to " + fe.Param()
		out.Type = "value_error.number.not_ge"
	case "enum":
		out.Msg = "value is not a valid enumeration member; permitted: '" +
			strings.Join(strings.Fields(fe.Param()), "', '") + "'"
		out.Type = "type_error.enum"
	case "email_or_blank":
		out.Msg, out.Type = "value is not a valid email address", "value_error.email"
	default:
		out.Msg, out.Type = fe.Error(), "value_error"
	}
	return out
}

// Date is a calendar date carried as "YYYY-MM-DD" on the wire.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		// accept full timestamps and keep only the date part
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q", s)
		}
	}
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func formatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func formatMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(2)
	return &s
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
