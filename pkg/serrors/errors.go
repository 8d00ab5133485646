package serrors

import (
	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"
)

// BaseError carries a stable code plus an i18n message id for user-facing text.
type BaseError struct {
	Code         string
	Message      string
	LocaleKey    string
	TemplateData map[string]string
}

func (e *BaseError) Error() string {
	return e.Message
}

// Localize returns the translated message, or Message when the key is unknown.
func (e *BaseError) Localize(l *i18n.Localizer) string {
	if e.LocaleKey == "" || l == nil {
		return e.Message
	}
	data := make(map[string]interface{}, len(e.TemplateData))
	for k, v := range e.TemplateData {
		if v == "" {
			data[k] = v
			continue
		}
		// template values that are themselves message ids get translated first
		if translated, err := l.Localize(&i18n.LocalizeConfig{MessageID: v}); err == nil {
			data[k] = translated
		} else {
			data[k] = v
		}
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    e.LocaleKey,
		TemplateData: data,
	})
	if err != nil {
		return e.Message
	}
	return msg
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func NewFieldRequiredError(field, fieldLocaleKey string) *BaseError {
	return &BaseError{
		Code:      "FIELD_REQUIRED",
		Message:   field + " is required",
		LocaleKey: "ValidationErrors.required",
		TemplateData: map[string]string{
			"Field": fieldLocaleKey,
		},
	}
}

type ValidationErrors map[string]*BaseError

func (v ValidationErrors) Error() string {
	for _, err := range v {
		return err.Error()
	}
	return "validation failed"
}

// ProcessValidatorErrors turns validator failures into coded errors keyed by struct field.
// fieldLocaleKey maps a struct field to the message id of its label; "" keeps the raw name.
func ProcessValidatorErrors(errs validator.ValidationErrors, fieldLocaleKey func(string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		label := fieldLocaleKey(fe.Field())
		if label == "" {
			label = fe.Field()
		}
		out[fe.Field()] = &BaseError{
			Code:      "VALIDATION_" + fe.Tag(),
			Message:   fe.Error(),
			LocaleKey: "ValidationErrors." + fe.Tag(),
			TemplateData: map[string]string{
				"Field": label,
				"Param": fe.Param(),
			},
		}
	}
	return out
}

func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, err := range errs {
		out[field] = err.Localize(l)
	}
	return out
}

// WithTemplateData returns a copy of the error with data merged into its template values.
func (e *BaseError) WithTemplateData(data map[string]string) *BaseError {
	cp := *e
	cp.TemplateData = make(map[string]string, len(e.TemplateData)+len(data))
	for k, v := range e.TemplateData {
		cp.TemplateData[k] = v
	}
	for k, v := range data {
		cp.TemplateData[k] = v
	}
	return &cp
}
