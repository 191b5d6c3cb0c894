// Package report assembles event and annual financial reports from the
// ledger aggregates and renders them as JSON, HTML or PDF.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mmynk/dahira/internal/calculator"
	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/models"
)

// HistoryLimit is how many report records History returns.
const HistoryLimit = 20

// ErrEventNotFound is returned when an event report is requested for an unknown event.
var ErrEventNotFound = errors.New("event not found")

// Source provides the data a report is built from. *ledger.Ledger satisfies it.
type Source interface {
	Snapshot(ctx context.Context) (*ledger.Snapshot, error)
}

// HistoryStore persists the report generation history.
type HistoryStore interface {
	AddReportRecord(ctx context.Context, record *models.ReportRecord) error
	ListReportRecords(ctx context.Context, limit int) ([]models.ReportRecord, error)
}

// Totals mirrors calculator.Totals with JSON names.
type Totals struct {
	DuesCollected int64 `json:"duesCollected"`
	OtherIncome   int64 `json:"otherIncome"`
	Expenses      int64 `json:"expenses"`
	Balance       int64 `json:"balance"`
}

// DueLine is one member's dues position for an event.
type DueLine struct {
	MemberID   string     `json:"memberId"`
	MemberName string     `json:"memberName"`
	Amount     int64      `json:"amount"`
	PaidAmount int64      `json:"paidAmount"`
	Remaining  int64      `json:"remaining"`
	IsPaid     bool       `json:"isPaid"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`
}

// EventSection is the per-event block shared by event and annual reports.
type EventSection struct {
	EventID             string    `json:"eventId"`
	Name                string    `json:"name"`
	Date                time.Time `json:"date"`
	Status              string    `json:"status"`
	CotisationHomme     int64     `json:"cotisationHomme"`
	CotisationFemme     int64     `json:"cotisationFemme"`
	Totals              Totals    `json:"totals"`
	MembersPaidCount    int       `json:"membersPaidCount"`
	EligibleMemberCount int       `json:"eligibleMemberCount"`
	PaymentRate         int       `json:"paymentRate"`
	Dues                []DueLine `json:"dues"`
}

// EventReport is the document produced for one event.
type EventReport struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Event       EventSection `json:"event"`
}

func (d *EventReport) historyRecord() *models.ReportRecord {
	return &models.ReportRecord{
		Type:    models.ReportEvent,
		Name:    "Rapport " + d.Event.Name,
		EventID: d.Event.EventID,
	}
}

// AnnualReport is the document produced for a calendar year.
type AnnualReport struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Year        int            `json:"year"`
	Totals      Totals         `json:"totals"`
	Events      []EventSection `json:"events"`
}

func (d *AnnualReport) historyRecord() *models.ReportRecord {
	return &models.ReportRecord{
		Type: models.ReportAnnual,
		Name: fmt.Sprintf("Rapport annuel %d", d.Year),
		Year: d.Year,
	}
}

// Assembler builds reports and keeps the generation history.
type Assembler struct {
	source  Source
	history HistoryStore
	now     func() time.Time
}

// NewAssembler creates an Assembler.
func NewAssembler(source Source, history HistoryStore) *Assembler {
	return &Assembler{source: source, history: history, now: time.Now}
}

// EventReport builds the report of one event.
func (a *Assembler) EventReport(ctx context.Context, eventID string) (*EventReport, error) {
	snap, err := a.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	event, ok := snap.Event(eventID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEventNotFound, eventID)
	}

	doc := &EventReport{
		GeneratedAt: a.now().UTC(),
		Event:       section(event, snap.EventSummary(eventID), snap),
	}

	return doc, nil
}

// AnnualReport builds the report of every event dated in year.
func (a *Assembler) AnnualReport(ctx context.Context, year int) (*AnnualReport, error) {
	snap, err := a.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	annual := snap.AnnualSummary(year)

	doc := &AnnualReport{
		GeneratedAt: a.now().UTC(),
		Year:        year,
		Totals:      totals(annual.Totals),
		Events:      make([]EventSection, 0, len(annual.Events)),
	}
	for _, summary := range annual.Events {
		event, _ := snap.Event(summary.EventID)
		doc.Events = append(doc.Events, section(event, summary, snap))
	}

	return doc, nil
}

// History returns the latest generated reports, newest first.
func (a *Assembler) History(ctx context.Context) ([]models.ReportRecord, error) {
	records, err := a.history.ListReportRecords(ctx, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list report history: %w", err)
	}
	return records, nil
}

// record appends to the history. A failure here must not fail the download.
func (a *Assembler) record(ctx context.Context, r *models.ReportRecord) {
	r.CreatedAt = a.now().UTC()
	if err := a.history.AddReportRecord(ctx, r); err != nil {
		slog.Warn("Failed to record report generation", "type", r.Type, "name", r.Name, "error", err)
	}
}

func section(event models.Event, summary calculator.EventSummary, snap *ledger.Snapshot) EventSection {
	return EventSection{
		EventID:             event.ID,
		Name:                event.Name,
		Date:                event.Date,
		Status:              string(event.Status),
		CotisationHomme:     event.CotisationHomme,
		CotisationFemme:     event.CotisationFemme,
		Totals:              totals(summary.Totals),
		MembersPaidCount:    summary.MembersPaidCount,
		EligibleMemberCount: summary.EligibleMemberCount,
		PaymentRate:         summary.PaymentRate(),
		Dues:                dueLines(event.ID, snap),
	}
}

// dueLines lists the event's dues records by member name. Records whose
// member was deleted are kept and labelled as such.
func dueLines(eventID string, snap *ledger.Snapshot) []DueLine {
	names := make(map[string]string, len(snap.Members))
	for _, m := range snap.Members {
		names[m.ID] = m.FullName()
	}

	lines := []DueLine{}
	for _, c := range snap.Cotisations {
		if c.EventID != eventID {
			continue
		}
		name, ok := names[c.MemberID]
		if !ok {
			name = "Membre supprimé"
		}
		lines = append(lines, DueLine{
			MemberID:   c.MemberID,
			MemberName: name,
			Amount:     c.Amount,
			PaidAmount: c.PaidAmount,
			Remaining:  c.Remaining(),
			IsPaid:     c.IsPaid,
			PaidAt:     c.PaidAt,
		})
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].MemberName < lines[j].MemberName })
	return lines
}

func totals(t calculator.Totals) Totals {
	return Totals{
		DuesCollected: t.DuesCollected,
		OtherIncome:   t.OtherIncome,
		Expenses:      t.Expenses,
		Balance:       t.Balance,
	}
}
