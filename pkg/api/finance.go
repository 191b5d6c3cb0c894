package api

import "time"

type Cotisation struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"memberId"`
	EventID    string     `json:"eventId"`
	Amount     int64      `json:"amount"`
	PaidAmount int64      `json:"paidAmount"`
	Remaining  int64      `json:"remaining"`
	IsPaid     bool       `json:"isPaid"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type RecordPaymentRequest struct {
	MemberID string `json:"memberId" validate:"required"`
	EventID  string `json:"eventId" validate:"required"`
	Amount   int64  `json:"amount" validate:"gt=0"`
}

type RecordPaymentResponse struct {
	Cotisation Cotisation `json:"cotisation"`
	Accepted   int64      `json:"accepted"`
	Truncated  int64      `json:"truncated"`
	Created    bool       `json:"created"`
}

type ListCotisationsRequest struct {
	MemberID string `json:"memberId"`
	EventID  string `json:"eventId"`
}

type ListCotisationsResponse struct {
	Cotisations []Cotisation `json:"cotisations"`
}

type EligibleEventsRequest struct {
	MemberID string `json:"memberId" validate:"required"`
}

type EligibleEventsResponse struct {
	Events []Event `json:"events"`
}

type Transaction struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateTransactionRequest struct {
	EventID     string `json:"eventId" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=income expense"`
	Category    string `json:"category" validate:"required"`
	Amount      int64  `json:"amount" validate:"gt=0"`
	Description string `json:"description" validate:"max=500"`
	// Date defaults to today when empty.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateTransactionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteTransactionResponse struct{}

type ListTransactionsRequest struct {
	EventID string `json:"eventId"`
}

type ListTransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}
