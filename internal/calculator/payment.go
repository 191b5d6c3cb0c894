package calculator

import (
	"time"

	"github.com/mmynk/dahira/internal/models"
)

// PaymentResult is the outcome of applying one payment to a dues record.
type PaymentResult struct {
	// AlreadyPaid is what the record held before this payment.
	AlreadyPaid int64

	// Accepted is the part of the proposed payment that was applied.
	Accepted int64

	// Truncated is the part of the proposed payment that was dropped by the cap.
	Truncated int64

	// NewPaidAmount is AlreadyPaid + Accepted and never exceeds the due amount
	// unless the record already exceeded it before the call.
	NewPaidAmount int64

	IsPaid bool

	// PaidAt is now when something was accepted, otherwise the previous value.
	PaidAt *time.Time
}

// ApplyPayment computes the new state of a dues record after a payment.
//
// existing may be nil when the member has never paid for the event. The
// payment is capped at what remains owed: overpayment is silently truncated,
// not rejected and not carried as credit. A fully paid record yields a no-op
// result with Accepted == 0. PaidAmount is never decreased, even if prior
// data already exceeds dueAmount.
//
// Callers reject non-positive payments before reaching this function; a
// non-positive proposed amount is treated as nothing accepted.
func ApplyPayment(existing *models.Cotisation, dueAmount, proposed int64, now time.Time) PaymentResult {
	var alreadyPaid int64
	var paidAt *time.Time
	if existing != nil {
		alreadyPaid = existing.PaidAmount
		paidAt = existing.PaidAt
	}

	remaining := dueAmount - alreadyPaid
	if remaining < 0 {
		remaining = 0
	}

	accepted := proposed
	if accepted < 0 {
		accepted = 0
	}
	if accepted > remaining {
		accepted = remaining
	}

	result := PaymentResult{
		AlreadyPaid:   alreadyPaid,
		Accepted:      accepted,
		NewPaidAmount: alreadyPaid + accepted,
		PaidAt:        paidAt,
	}
	if proposed > accepted {
		result.Truncated = proposed - accepted
	}
	result.IsPaid = result.NewPaidAmount >= dueAmount

	if accepted > 0 {
		t := now
		result.PaidAt = &t
	}

	return result
}
