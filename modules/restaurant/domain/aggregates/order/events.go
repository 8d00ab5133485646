package order

import (
	"time"
)

type StatusChangedEvent struct {
	OrderID  string
	From     Status
	To       Status
	UserType string
	At       time.Time
}

func NewStatusChangedEvent(orderID string, from, to Status, userType string) *StatusChangedEvent {
	return &StatusChangedEvent{
		OrderID:  orderID,
		From:     from,
		To:       to,
		UserType: userType,
		At:       time.Now(),
	}
}

type DeletedEvent struct {
	OrderID  string
	UserType string
	At       time.Time
}

func NewDeletedEvent(orderID, userType string) *DeletedEvent {
	return &DeletedEvent{OrderID: orderID, UserType: userType, At: time.Now()}
}
