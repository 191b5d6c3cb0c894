package api

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type Event struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Date            string    `json:"date"`
	CotisationHomme int64     `json:"cotisationHomme"`
	CotisationFemme int64     `json:"cotisationFemme"`
	Status          string    `json:"status"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EventInput holds the editable event fields.
type EventInput struct {
	Name            string `json:"name" validate:"required,max=150"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	CotisationHomme int64  `json:"cotisationHomme" validate:"gte=0"`
	CotisationFemme int64  `json:"cotisationFemme" validate:"gte=0"`
	Status          string `json:"status" validate:"required,oneof=upcoming ongoing completed"`
	Description     string `json:"description" validate:"max=1000"`
}

type CreateEventRequest struct {
	EventInput
}

type CreateEventResponse struct {
	Event Event `json:"event"`
}

type UpdateEventRequest struct {
	ID string `json:"id" validate:"required"`
	EventInput
}

type UpdateEventResponse struct {
	Event Event `json:"event"`
}

type DeleteEventRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteEventResponse struct{}

type ListEventsRequest struct{}

type ListEventsResponse struct {
	Events []Event `json:"events"`
}
