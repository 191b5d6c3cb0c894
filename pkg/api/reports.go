package api

import "time"

type Totals struct {
	DuesCollected int64 `json:"duesCollected"`
	OtherIncome   int64 `json:"otherIncome"`
	Expenses      int64 `json:"expenses"`
	Balance       int64 `json:"balance"`
}

type EventSummary struct {
	EventID             string `json:"eventId"`
	Totals              Totals `json:"totals"`
	MembersPaidCount    int    `json:"membersPaidCount"`
	EligibleMemberCount int    `json:"eligibleMemberCount"`
	PaymentRate         int    `json:"paymentRate"`
}

type DashboardRequest struct{}

type DashboardResponse struct {
	MemberCount     int    `json:"memberCount"`
	AdultCount      int    `json:"adultCount"`
	CommissionCount int    `json:"commissionCount"`
	EventCount      int    `json:"eventCount"`
	UpcomingCount   int    `json:"upcomingCount"`
	Totals          Totals `json:"totals"`
}

type EventSummaryRequest struct {
	EventID string `json:"eventId" validate:"required"`
}

type EventSummaryResponse struct {
	Event   Event        `json:"event"`
	Summary EventSummary `json:"summary"`
}

type AnnualSummaryRequest struct {
	Year int `json:"year" validate:"gte=1,lte=9999"`
}

type AnnualSummaryResponse struct {
	Year   int            `json:"year"`
	Events []EventSummary `json:"events"`
	Totals Totals         `json:"totals"`
}

type ReportRecord struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	EventID   string    `json:"eventId,omitempty"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListReportHistoryRequest struct{}

type ListReportHistoryResponse struct {
	Reports []ReportRecord `json:"reports"`
}
