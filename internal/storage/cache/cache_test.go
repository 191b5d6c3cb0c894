package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage"
	"github.com/mmynk/dahira/internal/storage/sqlite"
)

type counter struct {
	hits, misses, invalidations map[storage.Collection]int
}

func newCounter() *counter {
	return &counter{
		hits:          map[storage.Collection]int{},
		misses:        map[storage.Collection]int{},
		invalidations: map[storage.Collection]int{},
	}
}

func (c *counter) option() Option {
	return WithHooks(
		func(col storage.Collection) { c.hits[col]++ },
		func(col storage.Collection) { c.misses[col]++ },
		func(col storage.Collection) { c.invalidations[col]++ },
	)
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	backing, err := sqlite.New(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	s := New(backing, opts...)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	c := newCounter()
	s := newTestStore(t, c.option())

	members, err := s.ListMembers(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)

	_, err = s.ListMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.misses[storage.Members])
	assert.Equal(t, 1, c.hits[storage.Members])

	require.NoError(t, s.CreateMember(ctx, &models.Member{FirstName: "Modou", Gender: models.GenderMale, Age: 33}))
	assert.Equal(t, 1, c.invalidations[storage.Members])

	members, err = s.ListMembers(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, 2, c.misses[storage.Members])
}

func TestDeleteEventInvalidatesLedger(t *testing.T) {
	ctx := context.Background()
	c := newCounter()
	s := newTestStore(t, c.option())

	event := &models.Event{Name: "Gamou", Date: time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC),
		CotisationHomme: 3000, CotisationFemme: 2000, Status: models.EventUpcoming}
	require.NoError(t, s.CreateEvent(ctx, event))
	require.NoError(t, s.CreateCotisation(ctx, &models.Cotisation{MemberID: "m", EventID: event.ID, Amount: 3000, PaidAmount: 1000}))

	cotisations, err := s.ListCotisations(ctx)
	require.NoError(t, err)
	require.Len(t, cotisations, 1)

	require.NoError(t, s.DeleteEvent(ctx, event.ID))
	assert.Equal(t, 1, c.invalidations[storage.Transactions])

	cotisations, err = s.ListCotisations(ctx)
	require.NoError(t, err)
	assert.Empty(t, cotisations)
}

func TestFailedWriteKeepsCache(t *testing.T) {
	ctx := context.Background()
	c := newCounter()
	s := newTestStore(t, c.option())

	_, err := s.ListEvents(ctx)
	require.NoError(t, err)

	err = s.UpdateEvent(ctx, &models.Event{ID: "missing", Name: "X", Status: models.EventUpcoming})
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.Zero(t, c.invalidations[storage.Events])

	_, err = s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits[storage.Events])
}

func TestCallerCannotMutateCache(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.CreateMember(ctx, &models.Member{FirstName: "Aminata", Gender: models.GenderFemale, Age: 22}))
	first, err := s.ListMembers(ctx)
	require.NoError(t, err)
	first[0].FirstName = "changed"

	second, err := s.ListMembers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Aminata", second[0].FirstName)
}

func TestCallerCannotMutateCachedReferences(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	member := &models.Member{FirstName: "Cheikh", Gender: models.GenderMale, Age: 45}
	require.NoError(t, s.CreateMember(ctx, member))
	require.NoError(t, s.CreateCommission(ctx, &models.Commission{Name: "Accueil", MemberIDs: []string{member.ID}}))
	event := &models.Event{Name: "Magal", Date: time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
		CotisationHomme: 5000, CotisationFemme: 4000, Status: models.EventUpcoming}
	require.NoError(t, s.CreateEvent(ctx, event))
	paidAt := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateCotisation(ctx, &models.Cotisation{
		MemberID: member.ID, EventID: event.ID, Amount: 5000, PaidAmount: 5000, IsPaid: true, PaidAt: &paidAt,
	}))

	for i := 0; i < 3; i++ {
		commissions, err := s.ListCommissions(ctx)
		require.NoError(t, err)
		require.Len(t, commissions, 1)
		require.Equal(t, []string{member.ID}, commissions[0].MemberIDs)
		commissions[0].MemberIDs[0] = "changed"

		cotisations, err := s.ListCotisations(ctx)
		require.NoError(t, err)
		require.Len(t, cotisations, 1)
		require.NotNil(t, cotisations[0].PaidAt)
		require.True(t, paidAt.Equal(*cotisations[0].PaidAt))
		*cotisations[0].PaidAt = time.Time{}
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := newCounter()
	s := newTestStore(t, c.option(), WithTTL(time.Minute))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, err := s.ListTransactions(ctx)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = s.ListTransactions(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, c.misses[storage.Transactions])
	assert.Zero(t, c.hits[storage.Transactions])
}
