package calculator

import (
	"math"

	"github.com/mmynk/dahira/internal/models"
)

// Totals are the four money figures shared by every financial view.
type Totals struct {
	DuesCollected int64
	OtherIncome   int64
	Expenses      int64
	Balance       int64 // DuesCollected + OtherIncome - Expenses, may be negative
}

func (t *Totals) add(o Totals) {
	t.DuesCollected += o.DuesCollected
	t.OtherIncome += o.OtherIncome
	t.Expenses += o.Expenses
	t.Balance += o.Balance
}

// EventSummary is the financial picture of one event.
type EventSummary struct {
	EventID string
	Totals

	// MembersPaidCount counts the event's dues records marked paid.
	MembersPaidCount int

	// EligibleMemberCount is the current adult membership, not a snapshot
	// from the event date.
	EligibleMemberCount int
}

// PaymentRate returns the percentage of eligible members who paid in full.
func (s EventSummary) PaymentRate() int {
	return PaymentRate(s.MembersPaidCount, s.EligibleMemberCount)
}

// PaymentRate returns round(paid / eligible * 100). Zero eligible members yields 0.
func PaymentRate(paid, eligible int) int {
	if eligible <= 0 {
		return 0
	}
	return int(math.Round(float64(paid) / float64(eligible) * 100))
}

// CountAdults returns how many members are old enough to owe dues.
func CountAdults(members []models.Member) int {
	count := 0
	for _, m := range members {
		if m.IsAdult() {
			count++
		}
	}
	return count
}

// AggregateEvent sums dues and transactions belonging to eventID.
//
// Records with paidAmount above their amount and duplicate dues records are
// summed as they are; cleaning them up is not this function's job.
func AggregateEvent(eventID string, cotisations []models.Cotisation, transactions []models.Transaction, eligibleMembers int) EventSummary {
	summary := EventSummary{EventID: eventID, EligibleMemberCount: eligibleMembers}

	for _, c := range cotisations {
		if c.EventID != eventID {
			continue
		}
		summary.DuesCollected += c.PaidAmount
		if c.IsPaid {
			summary.MembersPaidCount++
		}
	}

	for _, t := range transactions {
		if t.EventID != eventID {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			summary.OtherIncome += t.Amount
		case models.TransactionExpense:
			summary.Expenses += t.Amount
		}
	}

	summary.Balance = summary.DuesCollected + summary.OtherIncome - summary.Expenses
	return summary
}

// AnnualSummary collects per-event summaries of one calendar year.
type AnnualSummary struct {
	Year   int
	Events []EventSummary
	Totals Totals
}

// AggregateYear runs AggregateEvent for every event dated in year and sums them.
// The per-event order follows the input order. An empty year is all zeros.
func AggregateYear(year int, events []models.Event, cotisations []models.Cotisation, transactions []models.Transaction, eligibleMembers int) AnnualSummary {
	annual := AnnualSummary{Year: year, Events: []EventSummary{}}
	for _, event := range events {
		if event.Date.Year() != year {
			continue
		}
		summary := AggregateEvent(event.ID, cotisations, transactions, eligibleMembers)
		annual.Events = append(annual.Events, summary)
		annual.Totals.add(summary.Totals)
	}
	return annual
}

// GlobalTotals sums every dues record and transaction regardless of event.
func GlobalTotals(cotisations []models.Cotisation, transactions []models.Transaction) Totals {
	var totals Totals
	for _, c := range cotisations {
		totals.DuesCollected += c.PaidAmount
	}
	for _, t := range transactions {
		switch t.Type {
		case models.TransactionIncome:
			totals.OtherIncome += t.Amount
		case models.TransactionExpense:
			totals.Expenses += t.Amount
		}
	}
	totals.Balance = totals.DuesCollected + totals.OtherIncome - totals.Expenses
	return totals
}
