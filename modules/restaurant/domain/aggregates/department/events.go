package department

import "time"

type CreatedEvent struct {
	Data     CreateDTO
	UserType string
	At       time.Time
}

type UpdatedEvent struct {
	ID       string
	Data     UpdateDTO
	UserType string
	At       time.Time
}

type DeletedEvent struct {
	ID       string
	UserType string
	At       time.Time
}

func NewCreatedEvent(data CreateDTO, userType string) *CreatedEvent {
	return &CreatedEvent{Data: data, UserType: userType, At: time.Now()}
}

func NewUpdatedEvent(id string, data UpdateDTO, userType string) *UpdatedEvent {
	return &UpdatedEvent{ID: id, Data: data, UserType: userType, At: time.Now()}
}

func NewDeletedEvent(id, userType string) *DeletedEvent {
	return &DeletedEvent{ID: id, UserType: userType, At: time.Now()}
}
