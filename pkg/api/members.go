package api

import "time"

type Member struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Gender         string    `json:"gender"`
	Age            int       `json:"age"`
	IsAdult        bool      `json:"isAdult"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Function       string    `json:"function"`
	Position       string    `json:"position"`
	CommissionID   string    `json:"commissionId,omitempty"`
	CommissionRole string    `json:"commissionRole,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// MemberInput holds the editable member fields.
type MemberInput struct {
	FirstName      string `json:"firstName" validate:"required,max=100"`
	LastName       string `json:"lastName" validate:"max=100"`
	Gender         string `json:"gender" validate:"required,oneof=male female"`
	Age            int    `json:"age" validate:"gte=0,lte=150"`
	Phone          string `json:"phone" validate:"max=30"`
	Address        string `json:"address" validate:"max=200"`
	Function       string `json:"function" validate:"max=100"`
	Position       string `json:"position" validate:"max=100"`
	CommissionID   string `json:"commissionId"`
	CommissionRole string `json:"commissionRole" validate:"omitempty,oneof=president vice-president member"`
}

type CreateMemberRequest struct {
	MemberInput
}

type CreateMemberResponse struct {
	Member Member `json:"member"`
}

type UpdateMemberRequest struct {
	ID string `json:"id" validate:"required"`
	MemberInput
}

type UpdateMemberResponse struct {
	Member Member `json:"member"`
}

type DeleteMemberRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteMemberResponse struct{}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []Member `json:"members"`
}

type Commission struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PresidentID     string    `json:"presidentId,omitempty"`
	VicePresidentID string    `json:"vicePresidentId,omitempty"`
	MemberIDs       []string  `json:"memberIds"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CommissionInput holds the editable commission fields.
type CommissionInput struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Description     string   `json:"description" validate:"max=500"`
	PresidentID     string   `json:"presidentId"`
	VicePresidentID string   `json:"vicePresidentId"`
	MemberIDs       []string `json:"memberIds" validate:"dive,required"`
}

type CreateCommissionRequest struct {
	CommissionInput
}

type CreateCommissionResponse struct {
	Commission Commission `json:"commission"`
}

type UpdateCommissionRequest struct {
	ID string `json:"id" validate:"required"`
	CommissionInput
}

type UpdateCommissionResponse struct {
	Commission Commission `json:"commission"`
}

type DeleteCommissionRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteCommissionResponse struct{}

type ListCommissionsRequest struct{}

type ListCommissionsResponse struct {
	Commissions []Commission `json:"commissions"`
}
