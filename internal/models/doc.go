// Package models defines the core domain records for the Dahira administration service.
//
// # Records
//
//   - Member: a person in the association, optionally attached to a commission
//   - Commission: a sub-committee with a president, vice-president and members
//   - Event: a gathering with two gender-specific due rates
//   - Cotisation: the dues ledger entry linking one member to one event
//   - Transaction: an income or expense entry scoped to one event
//   - User: an account allowed to sign in to the dashboard
//
// # Conventions
//
// 1. Amounts are whole francs (F CFA has no minor unit) stored as int64.
// 2. Relationships use ID strings instead of pointers.
// 3. Optional fields are pointers or carry an explicit Has/Valid helper.
// 4. Derived facts (adulthood, paid state) are computed, never trusted from input.
package models
