package models

import "time"

// AdultAge is the age from which a member owes dues.
const AdultAge = 18

// Gender selects which of an event's two due rates applies to a member.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// CommissionRole is a member's position inside their commission.
type CommissionRole string

const (
	CommissionPresident     CommissionRole = "president"
	CommissionVicePresident CommissionRole = "vice-president"
	CommissionMember        CommissionRole = "member"
)

// Valid reports whether r is a known commission role.
func (r CommissionRole) Valid() bool {
	switch r {
	case CommissionPresident, CommissionVicePresident, CommissionMember:
		return true
	}
	return false
}

// Member represents one person registered in the association.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	FirstName string
	LastName  string
	Gender    Gender
	Age       int
	Phone     string
	Address   string

	// Function is the member's occupation outside the association.
	Function string

	// Position is the member's organizational role (e.g. "Jeuwrigne", "Secrétaire Général").
	Position string

	// CommissionID is empty when the member belongs to no commission.
	CommissionID string

	// CommissionRole is only meaningful when CommissionID is set.
	CommissionRole CommissionRole

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdult reports whether the member is old enough to owe dues.
// It is derived from Age on every call so the two can never drift apart.
func (m Member) IsAdult() bool {
	return m.Age >= AdultAge
}

// FullName returns "First Last".
func (m Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Commission represents an internal sub-committee.
type Commission struct {
	ID              string
	Name            string
	Description     string
	PresidentID     string
	VicePresidentID string
	MemberIDs       []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
