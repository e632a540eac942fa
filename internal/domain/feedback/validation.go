package feedback

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"feedbackdesk/internal/domain/customfield"
)

// Standard field keys used in ValidationError.
const (
	FieldRating   = "rating"
	FieldMessage  = "message"
	FieldCategory = "category"
)

const (
	MsgRatingRequired   = "Please provide a rating"
	MsgRatingRange      = "Rating must be between 1 and 5"
	MsgMessageRequired  = "Please provide feedback"
	MsgCategoryRequired = "Please select a category"
)

// Draft is a submission awaiting validation.
type Draft struct {
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Message  string `json:"message" validate:"notblank"`
	Category string `json:"category" validate:"required,oneof=bug suggestion compliment question other"`

	CustomFields []customfield.Definition `json:"-" validate:"-"`
}

// ValidationError lists every failing rule of a draft, keyed by field.
// Custom field keys are CustomFieldKey(id).
type ValidationError struct {
	Fields map[string]string
	order  []string
}

func (e *ValidationError) Error() string {
	messages := e.Messages()
	if len(messages) == 1 {
		return "invalid feedback: " + messages[0]
	}
	return fmt.Sprintf("invalid feedback (%d errors): %s", len(messages), strings.Join(messages, "; "))
}

func (e *ValidationError) FieldMessages() map[string]string { return e.Fields }

// Messages returns messages in rule order: rating, message, category, then
// custom fields in form order.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.order))
	for _, key := range e.order {
		out = append(out, e.Fields[key])
	}
	return out
}

func (e *ValidationError) Has(key string) bool {
	_, ok := e.Fields[key]
	return ok
}

func (e *ValidationError) add(key string, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[key]; !exists {
		e.order = append(e.order, key)
	}
	e.Fields[key] = message
}

func CustomFieldKey(id string) string {
	return "custom:" + id
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func draftValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		validate = v
	})
	return validate
}

// Validate evaluates every rule on the draft and returns a *ValidationError
// holding all failures, or nil when the draft can be submitted.
func Validate(d Draft) error {
	result := &ValidationError{}

	if err := draftValidator().Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			result.add(fe.Field(), standardMessage(fe))
		}
	}

	for _, field := range d.CustomFields {
		if field.Missing() {
			result.add(CustomFieldKey(field.ID), fmt.Sprintf("%s is required", field.DisplayLabel()))
		}
	}

	if len(result.order) == 0 {
		return nil
	}
	return result
}

func standardMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case FieldRating:
		if fe.Tag() == "required" {
			return MsgRatingRequired
		}
		return MsgRatingRange
	case FieldMessage:
		return MsgMessageRequired
	case FieldCategory:
		if fe.Tag() == "required" {
			return MsgCategoryRequired
		}
		return fmt.Sprintf("Unknown category %q", fe.Value())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
