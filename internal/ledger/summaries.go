package ledger

import (
	"context"
	"fmt"

	"github.com/mmynk/dahira/internal/calculator"
	"github.com/mmynk/dahira/internal/models"
)

// Snapshot is a consistent read of every collection the financial views use.
type Snapshot struct {
	Members      []models.Member
	Commissions  []models.Commission
	Events       []models.Event
	Cotisations  []models.Cotisation
	Transactions []models.Transaction
}

// Snapshot loads all collections.
func (l *Ledger) Snapshot(ctx context.Context) (*Snapshot, error) {
	members, err := l.store.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	commissions, err := l.store.ListCommissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	events, err := l.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	cotisations, err := l.store.ListCotisations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cotisations: %w", err)
	}
	transactions, err := l.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return &Snapshot{
		Members:      members,
		Commissions:  commissions,
		Events:       events,
		Cotisations:  cotisations,
		Transactions: transactions,
	}, nil
}

// Event returns the event with the given ID from the snapshot.
func (s *Snapshot) Event(id string) (models.Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// EventSummary aggregates one event. The eligible count is the current adult membership.
func (s *Snapshot) EventSummary(eventID string) calculator.EventSummary {
	return calculator.AggregateEvent(eventID, s.Cotisations, s.Transactions, calculator.CountAdults(s.Members))
}

// AnnualSummary aggregates every event dated in year.
func (s *Snapshot) AnnualSummary(year int) calculator.AnnualSummary {
	return calculator.AggregateYear(year, s.Events, s.Cotisations, s.Transactions, calculator.CountAdults(s.Members))
}

// EventSummary loads the event and its aggregate.
func (l *Ledger) EventSummary(ctx context.Context, eventID string) (*models.Event, calculator.EventSummary, error) {
	event, err := l.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, calculator.EventSummary{}, notFound(err, "failed to get event")
	}
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return nil, calculator.EventSummary{}, err
	}
	return event, snap.EventSummary(eventID), nil
}

// AnnualSummary aggregates a calendar year.
func (l *Ledger) AnnualSummary(ctx context.Context, year int) (calculator.AnnualSummary, error) {
	if year < 1 || year > 9999 {
		return calculator.AnnualSummary{}, fmt.Errorf("%w: year %d out of range", ErrValidation, year)
	}
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return calculator.AnnualSummary{}, err
	}
	return snap.AnnualSummary(year), nil
}

// Dashboard holds the headline counts and global financial totals.
type Dashboard struct {
	MemberCount     int
	AdultCount      int
	CommissionCount int
	EventCount      int
	UpcomingCount   int
	calculator.Totals
}

// Dashboard computes the overview across all events.
// Balance includes dues so it agrees with the event and annual reports.
func (l *Ledger) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		MemberCount:     len(snap.Members),
		AdultCount:      calculator.CountAdults(snap.Members),
		CommissionCount: len(snap.Commissions),
		EventCount:      len(snap.Events),
		Totals:          calculator.GlobalTotals(snap.Cotisations, snap.Transactions),
	}
	for _, e := range snap.Events {
		if e.Status == models.EventUpcoming {
			d.UpcomingCount++
		}
	}
	return d, nil
}
