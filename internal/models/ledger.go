package models

import "time"

// Cotisation is the dues record of one member for one event.
//
// Amount is snapshotted from the event's gender-specific rate when the record
// is created and is not re-resolved if the event's rates change afterwards.
// PaidAmount accumulates payments and stays within [0, Amount].
type Cotisation struct {
	ID         string
	MemberID   string
	EventID    string
	Amount     int64
	PaidAmount int64
	IsPaid     bool

	// PaidAt is the time of the last accepted payment, nil if nothing was paid.
	PaidAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining returns what is still owed, never negative.
func (c Cotisation) Remaining() int64 {
	if c.PaidAmount >= c.Amount {
		return 0
	}
	return c.Amount - c.PaidAmount
}

// TransactionType separates income from expense entries.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// IncomeCategories lists the labels accepted for income transactions.
var IncomeCategories = []string{"Cotisations", "Dons", "Ventes", "Sponsors", "Autres"}

// ExpenseCategories lists the labels accepted for expense transactions.
var ExpenseCategories = []string{
	"Alimentation",
	"Transport",
	"Location",
	"Équipement",
	"Communication",
	"Décoration",
	"Autres",
}

// ValidCategory reports whether category is accepted for the given type.
func ValidCategory(t TransactionType, category string) bool {
	var list []string
	switch t {
	case TransactionIncome:
		list = IncomeCategories
	case TransactionExpense:
		list = ExpenseCategories
	default:
		return false
	}
	for _, c := range list {
		if c == category {
			return true
		}
	}
	return false
}

// Transaction is a standalone income or expense entry scoped to one event.
// Transactions are never updated once created.
type Transaction struct {
	ID          string
	EventID     string
	Type        TransactionType
	Category    string
	Amount      int64
	Description string
	Date        time.Time
	CreatedAt   time.Time
}
