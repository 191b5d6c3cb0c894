package ledger_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dahira/internal/ledger"
	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage/cache"
	"github.com/mmynk/dahira/internal/storage/sqlite"
)

type fixture struct {
	store  *cache.Store
	ledger *ledger.Ledger
	fatou  *models.Member
	moussa *models.Member
	child  *models.Member
	gamou  *models.Event
	magal  *models.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backing, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	store := cache.New(backing)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	f := &fixture{
		store:  store,
		ledger: ledger.New(store),
		fatou:  &models.Member{FirstName: "Fatou", LastName: "Ndiaye", Gender: models.GenderFemale, Age: 28},
		moussa: &models.Member{FirstName: "Moussa", LastName: "Sarr", Gender: models.GenderMale, Age: 40},
		child:  &models.Member{FirstName: "Ami", Gender: models.GenderFemale, Age: 9},
		gamou: &models.Event{Name: "Gamou 2024", Date: time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
			CotisationHomme: 3000, CotisationFemme: 2000, Status: models.EventUpcoming},
		magal: &models.Event{Name: "Magal 2025", Date: time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
			CotisationHomme: 5000, CotisationFemme: 4000, Status: models.EventUpcoming},
	}
	for _, m := range []*models.Member{f.fatou, f.moussa, f.child} {
		require.NoError(t, store.CreateMember(ctx, m))
	}
	for _, e := range []*models.Event{f.gamou, f.magal} {
		require.NoError(t, store.CreateEvent(ctx, e))
	}
	return f
}

func TestGamouScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := f.ledger.RecordPayment(ctx, f.fatou.ID, f.gamou.ID, 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), receipt.Accepted)
	assert.Equal(t, int64(500), receipt.Truncated)
	assert.True(t, receipt.Cotisation.IsPaid)

	receipt, err = f.ledger.RecordPayment(ctx, f.fatou.ID, f.gamou.ID, 500)
	require.NoError(t, err)
	assert.Zero(t, receipt.Accepted)
	assert.Equal(t, int64(2000), receipt.Cotisation.PaidAmount)

	eligible, err := f.ledger.EligibleEvents(ctx, f.fatou.ID)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, f.magal.ID, eligible[0].ID)

	cotisations, err := f.ledger.ListCotisations(ctx, ledger.CotisationFilter{EventID: f.gamou.ID})
	require.NoError(t, err)
	assert.Len(t, cotisations, 1)
}

func TestSnapshotSurvivesRateChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.RecordPayment(ctx, f.moussa.ID, f.gamou.ID, 1000)
	require.NoError(t, err)

	f.gamou.CotisationHomme = 5000
	require.NoError(t, f.store.UpdateEvent(ctx, f.gamou))

	receipt, err := f.ledger.RecordPayment(ctx, f.moussa.ID, f.gamou.ID, 4000)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), receipt.Cotisation.Amount)
	assert.Equal(t, int64(2000), receipt.Accepted)
	assert.True(t, receipt.Cotisation.IsPaid)
}

func TestEligibilityFollowsSnapshotAfterRateChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("raised rate", func(t *testing.T) {
		_, err := f.ledger.RecordPayment(ctx, f.moussa.ID, f.gamou.ID, 3000)
		require.NoError(t, err)

		f.gamou.CotisationHomme = 5000
		require.NoError(t, f.store.UpdateEvent(ctx, f.gamou))

		eligible, err := f.ledger.EligibleEvents(ctx, f.moussa.ID)
		require.NoError(t, err)
		assert.NotContains(t, eventIDs(eligible), f.gamou.ID)

		receipt, err := f.ledger.RecordPayment(ctx, f.moussa.ID, f.gamou.ID, 1000)
		require.NoError(t, err)
		assert.Zero(t, receipt.Accepted)
		assert.True(t, receipt.Cotisation.IsPaid)
	})

	t.Run("lowered rate", func(t *testing.T) {
		_, err := f.ledger.RecordPayment(ctx, f.fatou.ID, f.magal.ID, 3000)
		require.NoError(t, err)

		f.magal.CotisationFemme = 2500
		require.NoError(t, f.store.UpdateEvent(ctx, f.magal))

		eligible, err := f.ledger.EligibleEvents(ctx, f.fatou.ID)
		require.NoError(t, err)
		assert.Contains(t, eventIDs(eligible), f.magal.ID)

		receipt, err := f.ledger.RecordPayment(ctx, f.fatou.ID, f.magal.ID, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), receipt.Accepted)
		assert.True(t, receipt.Cotisation.IsPaid)
	})
}

func eventIDs(events []models.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestMinorIsNeverCharged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.RecordPayment(ctx, f.child.ID, f.gamou.ID, 1000)
	assert.ErrorIs(t, err, ledger.ErrNotAdult)

	eligible, err := f.ledger.EligibleEvents(ctx, f.child.ID)
	require.NoError(t, err)
	assert.Empty(t, eligible)
}

func TestSummariesAndDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.RecordPayment(ctx, f.fatou.ID, f.gamou.ID, 2000)
	require.NoError(t, err)
	_, err = f.ledger.RecordPayment(ctx, f.moussa.ID, f.gamou.ID, 1000)
	require.NoError(t, err)
	require.NoError(t, f.ledger.RecordTransaction(ctx, &models.Transaction{
		EventID: f.gamou.ID, Type: models.TransactionIncome, Category: "Dons", Amount: 10000,
	}))
	require.NoError(t, f.ledger.RecordTransaction(ctx, &models.Transaction{
		EventID: f.gamou.ID, Type: models.TransactionExpense, Category: "Alimentation", Amount: 20000,
	}))

	event, summary, err := f.ledger.EventSummary(ctx, f.gamou.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gamou 2024", event.Name)
	assert.Equal(t, int64(3000), summary.DuesCollected)
	assert.Equal(t, int64(10000), summary.OtherIncome)
	assert.Equal(t, int64(20000), summary.Expenses)
	assert.Equal(t, int64(-7000), summary.Balance)
	assert.Equal(t, 1, summary.MembersPaidCount)
	assert.Equal(t, 2, summary.EligibleMemberCount)
	assert.Equal(t, 50, summary.PaymentRate())

	annual, err := f.ledger.AnnualSummary(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, annual.Events, 1)
	assert.Equal(t, summary.Balance, annual.Totals.Balance)

	empty, err := f.ledger.AnnualSummary(ctx, 2019)
	require.NoError(t, err)
	assert.Empty(t, empty.Events)
	assert.Zero(t, empty.Totals.Balance)

	dash, err := f.ledger.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, dash.MemberCount)
	assert.Equal(t, 2, dash.AdultCount)
	assert.Equal(t, 2, dash.UpcomingCount)
	assert.Equal(t, int64(-7000), dash.Balance)
}

func TestArchiveAndReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.Archive(ctx, "1234")
	assert.ErrorIs(t, err, ledger.ErrCodesNotSet)

	require.NoError(t, f.ledger.EnsureSecurityCodes(ctx, "1234", "9999"))
	// Seeding again must not overwrite.
	require.NoError(t, f.ledger.EnsureSecurityCodes(ctx, "0000", "0000"))

	_, err = f.ledger.RecordPayment(ctx, f.moussa.ID, f.magal.ID, 5000)
	require.NoError(t, err)

	_, err = f.ledger.Archive(ctx, "0000")
	assert.ErrorIs(t, err, ledger.ErrInvalidCode)

	export, err := f.ledger.Archive(ctx, "1234")
	require.NoError(t, err)
	assert.Len(t, export.Events, 2)
	assert.Len(t, export.Cotisations, 1)
	assert.False(t, export.ExportDate.IsZero())

	snap, err := f.ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.Cotisations)
	assert.Len(t, snap.Members, 3)

	assert.ErrorIs(t, f.ledger.Reset(ctx, "1234"), ledger.ErrInvalidCode)
	require.NoError(t, f.ledger.Reset(ctx, "9999"))
	snap, err = f.ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Members)
}
