package models

import "time"

// EventStatus is set manually by an admin; it is never derived from the date.
type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
)

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted:
		return true
	}
	return false
}

// Event represents a gathering for which adult members owe dues.
type Event struct {
	ID   string
	Name string
	Date time.Time

	// CotisationHomme is the amount owed by each adult male member.
	CotisationHomme int64

	// CotisationFemme is the amount owed by each adult female member.
	CotisationFemme int64

	Status      EventStatus
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
