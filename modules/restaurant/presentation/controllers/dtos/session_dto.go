package dtos

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/restaurant-admin/pkg/constants"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
)

// UserTypes are the roles a browser may act as.
var UserTypes = []string{"admin", "restaurant", "staff"}

type SessionDTO struct {
	Token    string `form:"Token" validate:"required"`
	UserType string `form:"UserType" validate:"required,oneof=admin restaurant staff"`
	Language string `form:"Language"`
	Next     string `form:"Next"`
}

var sessionFieldErrors = map[string]string{
	"Token":    "Session.Errors.TokenRequired",
	"UserType": "Session.Errors.UserTypeInvalid",
}

// Ok validates the form; unsupported languages silently fall back to English.
func (d *SessionDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Token = strings.TrimSpace(d.Token)
	d.UserType = strings.ToLower(strings.TrimSpace(d.UserType))
	d.Language = strings.ToLower(strings.TrimSpace(d.Language))
	if !intl.IsSupported(d.Language) {
		d.Language = "en"
	}

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	out := map[string]string{}
	validationErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		out[""] = errs.Error()
		return out, false
	}
	for _, fe := range validationErrs {
		if key, ok := sessionFieldErrors[fe.Field()]; ok {
			out[fe.Field()] = intl.T(ctx, key)
		}
	}
	return out, false
}

// SafeNext returns Next when it is a local path, fallback otherwise.
func (d *SessionDTO) SafeNext(fallback string) string {
	next := strings.TrimSpace(d.Next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if next == "/session" || strings.HasPrefix(next, "/session?") {
		return fallback
	}
	return next
}
