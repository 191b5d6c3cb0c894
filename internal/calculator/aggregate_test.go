package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/dahira/internal/models"
)

func TestEligibleEvents(t *testing.T) {
	awa := models.Member{ID: "awa", Gender: models.GenderFemale, Age: 25}
	events := []models.Event{
		{ID: "magal", CotisationHomme: 5000, CotisationFemme: 3000, Status: models.EventUpcoming},
		{ID: "gamou", CotisationHomme: 3000, CotisationFemme: 2000, Status: models.EventOngoing},
		{ID: "ziar", CotisationHomme: 1000, CotisationFemme: 1000, Status: models.EventCompleted},
		{ID: "kazu", CotisationHomme: 2000, CotisationFemme: 1500, Status: models.EventUpcoming},
	}

	tests := []struct {
		name        string
		cotisations []models.Cotisation
		want        []string
	}{
		{
			name: "no records keeps every open event",
			want: []string{"magal", "gamou", "kazu"},
		},
		{
			name: "fully paid event is dropped",
			cotisations: []models.Cotisation{
				{MemberID: "awa", EventID: "gamou", Amount: 2000, PaidAmount: 2000, IsPaid: true},
			},
			want: []string{"magal", "kazu"},
		},
		{
			name: "partially paid event stays",
			cotisations: []models.Cotisation{
				{MemberID: "awa", EventID: "magal", Amount: 3000, PaidAmount: 1000},
			},
			want: []string{"magal", "gamou", "kazu"},
		},
		{
			name: "another member's payment is ignored",
			cotisations: []models.Cotisation{
				{MemberID: "modou", EventID: "magal", Amount: 5000, PaidAmount: 5000, IsPaid: true},
			},
			want: []string{"magal", "gamou", "kazu"},
		},
		{
			name: "raised rate keeps a settled record settled",
			cotisations: []models.Cotisation{
				{MemberID: "awa", EventID: "gamou", Amount: 1000, PaidAmount: 1000, IsPaid: true},
			},
			want: []string{"magal", "kazu"},
		},
		{
			name: "lowered rate leaves the snapshotted remainder payable",
			cotisations: []models.Cotisation{
				{MemberID: "awa", EventID: "magal", Amount: 4000, PaidAmount: 3000},
			},
			want: []string{"magal", "gamou", "kazu"},
		},
		{
			name: "duplicate records use the largest paid amount",
			cotisations: []models.Cotisation{
				{MemberID: "awa", EventID: "kazu", Amount: 1500, PaidAmount: 1500, IsPaid: true},
				{MemberID: "awa", EventID: "kazu", Amount: 1500, PaidAmount: 200},
			},
			want: []string{"magal", "gamou"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EligibleEvents(awa, events, tt.cotisations)
			if len(got) != len(tt.want) {
				t.Fatalf("EligibleEvents() returned %d events, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.ID != tt.want[i] {
					t.Errorf("event %d = %s, want %s", i, e.ID, tt.want[i])
				}
			}
		})
	}
}

func TestAggregateEvent(t *testing.T) {
	cotisations := []models.Cotisation{
		{EventID: "gamou", Amount: 3000, PaidAmount: 3000, IsPaid: true},
		{EventID: "gamou", Amount: 2000, PaidAmount: 500},
		{EventID: "gamou", Amount: 2000, PaidAmount: 2000, IsPaid: true},
		{EventID: "magal", Amount: 5000, PaidAmount: 5000, IsPaid: true},
	}
	transactions := []models.Transaction{
		{EventID: "gamou", Type: models.TransactionIncome, Amount: 10000},
		{EventID: "gamou", Type: models.TransactionExpense, Amount: 4000},
		{EventID: "gamou", Type: models.TransactionExpense, Amount: 1500},
		{EventID: "magal", Type: models.TransactionExpense, Amount: 99999},
	}

	got := AggregateEvent("gamou", cotisations, transactions, 4)

	if got.DuesCollected != 5500 {
		t.Errorf("DuesCollected = %d, want 5500", got.DuesCollected)
	}
	if got.OtherIncome != 10000 {
		t.Errorf("OtherIncome = %d, want 10000", got.OtherIncome)
	}
	if got.Expenses != 5500 {
		t.Errorf("Expenses = %d, want 5500", got.Expenses)
	}
	if got.Balance != 10000 {
		t.Errorf("Balance = %d, want 10000", got.Balance)
	}
	if got.MembersPaidCount != 2 {
		t.Errorf("MembersPaidCount = %d, want 2", got.MembersPaidCount)
	}
	if got.PaymentRate() != 50 {
		t.Errorf("PaymentRate() = %d, want 50", got.PaymentRate())
	}

	t.Run("overpaid record is summed in full", func(t *testing.T) {
		dirty := []models.Cotisation{
			{EventID: "tabaski", Amount: 2000, PaidAmount: 3500, IsPaid: true},
		}
		got := AggregateEvent("tabaski", dirty, nil, 1)
		if got.DuesCollected != 3500 {
			t.Errorf("DuesCollected = %d, want 3500", got.DuesCollected)
		}
		if got.Balance != 3500 {
			t.Errorf("Balance = %d, want 3500", got.Balance)
		}
	})

	t.Run("duplicate member records are both counted", func(t *testing.T) {
		dirty := []models.Cotisation{
			{MemberID: "awa", EventID: "tabaski", Amount: 2000, PaidAmount: 2000, IsPaid: true},
			{MemberID: "awa", EventID: "tabaski", Amount: 2000, PaidAmount: 2000, IsPaid: true},
		}
		got := AggregateEvent("tabaski", dirty, nil, 4)
		if got.DuesCollected != 4000 {
			t.Errorf("DuesCollected = %d, want 4000", got.DuesCollected)
		}
		if got.MembersPaidCount != 2 {
			t.Errorf("MembersPaidCount = %d, want 2", got.MembersPaidCount)
		}
		if got.PaymentRate() != 50 {
			t.Errorf("PaymentRate() = %d, want 50", got.PaymentRate())
		}
	})

	t.Run("negative balance is reported as is", func(t *testing.T) {
		got := AggregateEvent("magal", cotisations, transactions, 1)
		if got.Balance != 5000-99999 {
			t.Errorf("Balance = %d, want %d", got.Balance, 5000-99999)
		}
	})
}

func TestPaymentRate(t *testing.T) {
	tests := []struct {
		paid, eligible, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{4, 4, 100},
	}
	for _, tt := range tests {
		if got := PaymentRate(tt.paid, tt.eligible); got != tt.want {
			t.Errorf("PaymentRate(%d, %d) = %d, want %d", tt.paid, tt.eligible, got, tt.want)
		}
	}
}

func TestAggregateYear(t *testing.T) {
	events := []models.Event{
		{ID: "a", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Date: time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)},
		{ID: "c", Date: time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC)},
	}
	cotisations := []models.Cotisation{
		{EventID: "a", PaidAmount: 1000, IsPaid: true},
		{EventID: "b", PaidAmount: 7000, IsPaid: true},
		{EventID: "c", PaidAmount: 2000},
	}
	transactions := []models.Transaction{
		{EventID: "a", Type: models.TransactionExpense, Amount: 300},
		{EventID: "c", Type: models.TransactionIncome, Amount: 50},
	}

	got := AggregateYear(2024, events, cotisations, transactions, 10)

	if len(got.Events) != 2 || got.Events[0].EventID != "a" || got.Events[1].EventID != "c" {
		t.Fatalf("Events = %+v, want a then c", got.Events)
	}
	want := Totals{DuesCollected: 3000, OtherIncome: 50, Expenses: 300, Balance: 2750}
	if got.Totals != want {
		t.Errorf("Totals = %+v, want %+v", got.Totals, want)
	}

	t.Run("empty year", func(t *testing.T) {
		got := AggregateYear(1999, events, cotisations, transactions, 10)
		if got.Events == nil || len(got.Events) != 0 {
			t.Errorf("Events = %v, want empty non-nil slice", got.Events)
		}
		if got.Totals != (Totals{}) {
			t.Errorf("Totals = %+v, want zero", got.Totals)
		}
	})
}

func TestCountAdultsAndGlobalTotals(t *testing.T) {
	members := []models.Member{{Age: 17}, {Age: 18}, {Age: 40}}
	if got := CountAdults(members); got != 2 {
		t.Errorf("CountAdults() = %d, want 2", got)
	}

	totals := GlobalTotals(
		[]models.Cotisation{{EventID: "x", PaidAmount: 100}, {EventID: "y", PaidAmount: 200}},
		[]models.Transaction{
			{EventID: "x", Type: models.TransactionIncome, Amount: 1000},
			{EventID: "y", Type: models.TransactionExpense, Amount: 400},
		},
	)
	want := Totals{DuesCollected: 300, OtherIncome: 1000, Expenses: 400, Balance: 900}
	if totals != want {
		t.Errorf("GlobalTotals() = %+v, want %+v", totals, want)
	}
}
