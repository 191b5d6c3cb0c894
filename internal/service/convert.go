package service

import (
	"fmt"
	"time"

	"github.com/mmynk/dahira/internal/calculator"
	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/pkg/api"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(api.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ledger.ErrValidation, s)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(api.DateLayout)
}

func toAPIMember(m models.Member) api.Member {
	return api.Member{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Gender:         string(m.Gender),
		Age:            m.Age,
		IsAdult:        m.IsAdult(),
		Phone:          m.Phone,
		Address:        m.Address,
		Function:       m.Function,
		Position:       m.Position,
		CommissionID:   m.CommissionID,
		CommissionRole: string(m.CommissionRole),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func applyMemberInput(m *models.Member, in api.MemberInput) {
	m.FirstName = in.FirstName
	m.LastName = in.LastName
	m.Gender = models.Gender(in.Gender)
	m.Age = in.Age
	m.Phone = in.Phone
	m.Address = in.Address
	m.Function = in.Function
	m.Position = in.Position
	m.CommissionID = in.CommissionID
	m.CommissionRole = models.CommissionRole(in.CommissionRole)
	if m.CommissionID == "" {
		m.CommissionRole = ""
	} else if m.CommissionRole == "" {
		m.CommissionRole = models.CommissionMember
	}
}

func toAPICommission(c models.Commission) api.Commission {
	ids := c.MemberIDs
	if ids == nil {
		ids = []string{}
	}
	return api.Commission{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		PresidentID:     c.PresidentID,
		VicePresidentID: c.VicePresidentID,
		MemberIDs:       ids,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toAPIEvent(e models.Event) api.Event {
	return api.Event{
		ID:              e.ID,
		Name:            e.Name,
		Date:            formatDate(e.Date),
		CotisationHomme: e.CotisationHomme,
		CotisationFemme: e.CotisationFemme,
		Status:          string(e.Status),
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func applyEventInput(e *models.Event, in api.EventInput) error {
	date, err := parseDate(in.Date)
	if err != nil {
		return err
	}
	e.Name = in.Name
	e.Date = date
	e.CotisationHomme = in.CotisationHomme
	e.CotisationFemme = in.CotisationFemme
	e.Status = models.EventStatus(in.Status)
	e.Description = in.Description
	return nil
}

func toAPICotisation(c models.Cotisation) api.Cotisation {
	return api.Cotisation{
		ID:         c.ID,
		MemberID:   c.MemberID,
		EventID:    c.EventID,
		Amount:     c.Amount,
		PaidAmount: c.PaidAmount,
		Remaining:  c.Remaining(),
		IsPaid:     c.IsPaid,
		PaidAt:     c.PaidAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toAPITransaction(t models.Transaction) api.Transaction {
	return api.Transaction{
		ID:          t.ID,
		EventID:     t.EventID,
		Type:        string(t.Type),
		Category:    t.Category,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        formatDate(t.Date),
		CreatedAt:   t.CreatedAt,
	}
}

func toAPITotals(t calculator.Totals) api.Totals {
	return api.Totals{
		DuesCollected: t.DuesCollected,
		OtherIncome:   t.OtherIncome,
		Expenses:      t.Expenses,
		Balance:       t.Balance,
	}
}

func toAPIEventSummary(s calculator.EventSummary) api.EventSummary {
	return api.EventSummary{
		EventID:             s.EventID,
		Totals:              toAPITotals(s.Totals),
		MembersPaidCount:    s.MembersPaidCount,
		EligibleMemberCount: s.EligibleMemberCount,
		PaymentRate:         s.PaymentRate(),
	}
}

func toAPIReportRecord(r models.ReportRecord) api.ReportRecord {
	return api.ReportRecord{
		ID:        r.ID,
		Type:      string(r.Type),
		Name:      r.Name,
		EventID:   r.EventID,
		Year:      r.Year,
		CreatedAt: r.CreatedAt,
	}
}

func toAPIUser(u *models.User) api.SessionUser {
	return api.SessionUser{ID: u.ID, Username: u.Username, Role: string(u.Role)}
}

// mapSlice converts every element with fn and never returns nil.
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
