package order

import (
	"strings"

	"github.com/go-faster/errors"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

var ErrInvalidStatus = errors.New("invalid order status")

var knownStatuses = []Status{StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled}

// ParseStatus accepts any casing of a known status.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range knownStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidStatus, "%q", s)
}

func (s Status) IsKnown() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// CanConfirm reports whether the confirm action is offered for an order in s.
func (s Status) CanConfirm() bool {
	return s == StatusPending
}

// CanCancel reports whether the cancel action is offered for an order in s.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) String() string {
	return string(s)
}
