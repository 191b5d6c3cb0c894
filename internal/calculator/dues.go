// Package calculator holds the dues and finance rules: due resolution,
// payment accumulation, eligibility and event/annual aggregation.
// Everything here is pure; callers load records and persist results.
package calculator

import "github.com/mmynk/dahira/internal/models"

// ResolveDueAmount returns what a member of the given gender owes for event.
// Male members owe CotisationHomme; everyone else owes CotisationFemme.
//
// The result must be snapshotted into the Cotisation when it is first created.
// Later rate changes on the event do not touch existing records.
func ResolveDueAmount(gender models.Gender, event models.Event) int64 {
	if gender == models.GenderMale {
		return event.CotisationHomme
	}
	return event.CotisationFemme
}
