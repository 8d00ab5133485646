package authz

import (
	"github.com/go-faster/errors"

	"github.com/iota-uz/restaurant-admin/pkg/serrors"
)

const (
	errorCodeForbidden = "AUTHZ_FORBIDDEN"
	errorLocaleKey     = "Authorization.PermissionDenied"
)

var ErrForbidden = errors.New("permission denied")

type ForbiddenError struct {
	*serrors.BaseError
}

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

func forbiddenError(req Request) *ForbiddenError {
	return &ForbiddenError{
		BaseError: serrors.NewError(
			errorCodeForbidden,
			"permission denied",
			errorLocaleKey,
		).WithTemplateData(map[string]string{
			"object":  req.Object,
			"action":  req.Action,
			"subject": req.Subject,
		}),
	}
}
