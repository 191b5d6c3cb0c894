package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/dahira/internal/models"
)

var testNow = time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)

func TestResolveDueAmount(t *testing.T) {
	gamou := models.Event{ID: "e1", Name: "Gamou 2024", CotisationHomme: 3000, CotisationFemme: 2000}

	tests := []struct {
		name   string
		gender models.Gender
		want   int64
	}{
		{"male pays homme rate", models.GenderMale, 3000},
		{"female pays femme rate", models.GenderFemale, 2000},
		{"unset gender falls back to femme rate", models.Gender(""), 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDueAmount(tt.gender, gamou); got != tt.want {
				t.Errorf("ResolveDueAmount(%q) = %d, want %d", tt.gender, got, tt.want)
			}
		})
	}

	t.Run("event without rates owes nothing", func(t *testing.T) {
		if got := ResolveDueAmount(models.GenderMale, models.Event{}); got != 0 {
			t.Errorf("ResolveDueAmount() = %d, want 0", got)
		}
	})
}

func TestApplyPayment(t *testing.T) {
	earlier := testNow.Add(-48 * time.Hour)

	tests := []struct {
		name         string
		existing     *models.Cotisation
		due          int64
		proposed     int64
		wantAccepted int64
		wantPaid     int64
		wantTrunc    int64
		wantIsPaid   bool
		wantPaidAt   *time.Time
	}{
		{
			name:         "first partial payment",
			due:          3000,
			proposed:     1000,
			wantAccepted: 1000,
			wantPaid:     1000,
			wantPaidAt:   &testNow,
		},
		{
			name:         "first payment exactly due",
			due:          3000,
			proposed:     3000,
			wantAccepted: 3000,
			wantPaid:     3000,
			wantIsPaid:   true,
			wantPaidAt:   &testNow,
		},
		{
			name:         "overpayment is capped",
			due:          2000,
			proposed:     2500,
			wantAccepted: 2000,
			wantPaid:     2000,
			wantTrunc:    500,
			wantIsPaid:   true,
			wantPaidAt:   &testNow,
		},
		{
			name:         "remainder completes a partial record",
			existing:     &models.Cotisation{Amount: 3000, PaidAmount: 1000, PaidAt: &earlier},
			due:          3000,
			proposed:     2000,
			wantAccepted: 2000,
			wantPaid:     3000,
			wantIsPaid:   true,
			wantPaidAt:   &testNow,
		},
		{
			name:         "already paid is a no-op",
			existing:     &models.Cotisation{Amount: 2000, PaidAmount: 2000, IsPaid: true, PaidAt: &earlier},
			due:          2000,
			proposed:     500,
			wantAccepted: 0,
			wantPaid:     2000,
			wantTrunc:    500,
			wantIsPaid:   true,
			wantPaidAt:   &earlier,
		},
		{
			name:         "overpaid legacy record is never decreased",
			existing:     &models.Cotisation{Amount: 2000, PaidAmount: 2600, IsPaid: true, PaidAt: &earlier},
			due:          2000,
			proposed:     100,
			wantAccepted: 0,
			wantPaid:     2600,
			wantTrunc:    100,
			wantIsPaid:   true,
			wantPaidAt:   &earlier,
		},
		{
			name:       "zero due is paid without accepting anything",
			due:        0,
			proposed:   100,
			wantPaid:   0,
			wantTrunc:  100,
			wantIsPaid: true,
		},
		{
			name:     "non-positive payment accepts nothing",
			due:      1000,
			proposed: -50,
			wantPaid: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyPayment(tt.existing, tt.due, tt.proposed, testNow)

			if got.Accepted != tt.wantAccepted {
				t.Errorf("Accepted = %d, want %d", got.Accepted, tt.wantAccepted)
			}
			if got.NewPaidAmount != tt.wantPaid {
				t.Errorf("NewPaidAmount = %d, want %d", got.NewPaidAmount, tt.wantPaid)
			}
			if got.Truncated != tt.wantTrunc {
				t.Errorf("Truncated = %d, want %d", got.Truncated, tt.wantTrunc)
			}
			if got.IsPaid != tt.wantIsPaid {
				t.Errorf("IsPaid = %v, want %v", got.IsPaid, tt.wantIsPaid)
			}
			switch {
			case tt.wantPaidAt == nil && got.PaidAt != nil:
				t.Errorf("PaidAt = %v, want nil", *got.PaidAt)
			case tt.wantPaidAt != nil && got.PaidAt == nil:
				t.Errorf("PaidAt = nil, want %v", *tt.wantPaidAt)
			case tt.wantPaidAt != nil && !got.PaidAt.Equal(*tt.wantPaidAt):
				t.Errorf("PaidAt = %v, want %v", *got.PaidAt, *tt.wantPaidAt)
			}
		})
	}
}

// Fatou owes 2000, pays 2500, then tries 500 more.
func TestApplyPayment_GamouScenario(t *testing.T) {
	gamou := models.Event{ID: "gamou", Name: "Gamou 2024", CotisationHomme: 3000, CotisationFemme: 2000}
	fatou := models.Member{ID: "fatou", FirstName: "Fatou", Gender: models.GenderFemale, Age: 30}

	due := ResolveDueAmount(fatou.Gender, gamou)
	first := ApplyPayment(nil, due, 2500, testNow)
	if first.Accepted != 2000 || first.NewPaidAmount != 2000 || !first.IsPaid {
		t.Fatalf("first payment = %+v, want accepted=2000 paid=2000 isPaid", first)
	}

	record := &models.Cotisation{
		MemberID:   fatou.ID,
		EventID:    gamou.ID,
		Amount:     due,
		PaidAmount: first.NewPaidAmount,
		IsPaid:     first.IsPaid,
		PaidAt:     first.PaidAt,
	}
	second := ApplyPayment(record, record.Amount, 500, testNow.Add(time.Hour))
	if second.Accepted != 0 {
		t.Errorf("second Accepted = %d, want 0", second.Accepted)
	}
	if second.NewPaidAmount != 2000 {
		t.Errorf("second NewPaidAmount = %d, want 2000", second.NewPaidAmount)
	}
	if !second.PaidAt.Equal(testNow) {
		t.Errorf("second PaidAt = %v, want unchanged %v", second.PaidAt, testNow)
	}
}
