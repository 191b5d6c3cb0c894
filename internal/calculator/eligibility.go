package calculator

import "github.com/mmynk/dahira/internal/models"

// EligibleEvents returns the events for which member can still pay, in input order.
//
// Completed events are dropped. When a dues record for (member, event) exists,
// the event is dropped once the record's paid amount reaches its snapshotted
// amount, the same figure payments are capped against. Without a record the
// event stays. Partially paid events stay so the remainder can be paid.
func EligibleEvents(member models.Member, events []models.Event, cotisations []models.Cotisation) []models.Event {
	records := make(map[string]models.Cotisation)
	for _, c := range cotisations {
		if c.MemberID != member.ID {
			continue
		}
		// Duplicates are a known data risk; the largest paid amount wins.
		if prev, ok := records[c.EventID]; !ok || c.PaidAmount > prev.PaidAmount {
			records[c.EventID] = c
		}
	}

	eligible := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.Status == models.EventCompleted {
			continue
		}
		if c, ok := records[event.ID]; ok && c.PaidAmount >= c.Amount {
			continue
		}
		eligible = append(eligible, event)
	}
	return eligible
}
