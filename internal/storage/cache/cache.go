// Package cache wraps a storage.Store with a read-through cache of full
// collections. Every successful write invalidates the collections it touches.
package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/dahira/internal/models"
	"github.com/mmynk/dahira/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type entry struct {
	value   any
	expires time.Time
}

// Store caches the List* reads of an underlying store.
type Store struct {
	next storage.Store
	ttl  time.Duration
	now  func() time.Time

	onHit        func(storage.Collection)
	onMiss       func(storage.Collection)
	onInvalidate func(storage.Collection)

	mu      sync.RWMutex
	entries map[storage.Collection]entry
	gen     map[storage.Collection]uint64
}

// Option configures a Store.
type Option func(*Store)

// WithTTL bounds how long a cached collection is served. Zero keeps entries
// until the next write.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithHooks registers callbacks for cache hits, misses and invalidations.
// Any of them may be nil.
func WithHooks(onHit, onMiss, onInvalidate func(storage.Collection)) Option {
	return func(s *Store) {
		s.onHit = onHit
		s.onMiss = onMiss
		s.onInvalidate = onInvalidate
	}
}

// New wraps next.
func New(next storage.Store, opts ...Option) *Store {
	s := &Store{
		next:    next,
		now:     time.Now,
		entries: make(map[storage.Collection]entry),
		gen:     make(map[storage.Collection]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Invalidate drops the cached value of each collection.
func (s *Store) Invalidate(collections ...storage.Collection) {
	s.mu.Lock()
	for _, c := range collections {
		delete(s.entries, c)
		s.gen[c]++
	}
	s.mu.Unlock()

	if s.onInvalidate != nil {
		for _, c := range collections {
			s.onInvalidate(c)
		}
	}
}

func (s *Store) lookup(c storage.Collection) (any, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[c]
	if ok && s.ttl > 0 && s.now().After(e.expires) {
		ok = false
	}
	return e.value, s.gen[c], ok
}

func (s *Store) fill(c storage.Collection, gen uint64, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A write landed while we were loading; the loaded value may be stale.
	if s.gen[c] != gen {
		return
	}
	s.entries[c] = entry{value: value, expires: s.now().Add(s.ttl)}
}

// load serves a cloned collection from the cache or fetches it. deep copies
// the reference fields of one item; nil means a shallow copy is enough.
func load[T any](s *Store, c storage.Collection, deep func(T) T, fetch func() ([]T, error)) ([]T, error) {
	v, gen, ok := s.lookup(c)
	if ok {
		if s.onHit != nil {
			s.onHit(c)
		}
		return cloneAll(v.([]T), deep), nil
	}
	if s.onMiss != nil {
		s.onMiss(c)
	}

	items, err := fetch()
	if err != nil {
		return nil, err
	}
	s.fill(c, gen, cloneAll(items, deep))
	return items, nil
}

func cloneAll[T any](items []T, deep func(T) T) []T {
	out := slices.Clone(items)
	if deep != nil {
		for i := range out {
			out[i] = deep(out[i])
		}
	}
	return out
}

func cloneCommission(c models.Commission) models.Commission {
	c.MemberIDs = slices.Clone(c.MemberIDs)
	return c
}

func cloneCotisation(c models.Cotisation) models.Cotisation {
	if c.PaidAt != nil {
		at := *c.PaidAt
		c.PaidAt = &at
	}
	return c
}

// write runs fn and invalidates collections only if it succeeds.
func (s *Store) write(fn func() error, collections ...storage.Collection) error {
	if err := fn(); err != nil {
		return err
	}
	s.Invalidate(collections...)
	return nil
}

func (s *Store) CreateMember(ctx context.Context, member *models.Member) error {
	return s.write(func() error { return s.next.CreateMember(ctx, member) }, storage.Members)
}

func (s *Store) GetMember(ctx context.Context, id string) (*models.Member, error) {
	return s.next.GetMember(ctx, id)
}

func (s *Store) UpdateMember(ctx context.Context, member *models.Member) error {
	return s.write(func() error { return s.next.UpdateMember(ctx, member) }, storage.Members)
}

func (s *Store) DeleteMember(ctx context.Context, id string) error {
	return s.write(func() error { return s.next.DeleteMember(ctx, id) }, storage.Members, storage.Commissions)
}

func (s *Store) ListMembers(ctx context.Context) ([]models.Member, error) {
	return load(s, storage.Members, nil, func() ([]models.Member, error) { return s.next.ListMembers(ctx) })
}

func (s *Store) CreateCommission(ctx context.Context, commission *models.Commission) error {
	return s.write(func() error { return s.next.CreateCommission(ctx, commission) }, storage.Commissions)
}

func (s *Store) GetCommission(ctx context.Context, id string) (*models.Commission, error) {
	return s.next.GetCommission(ctx, id)
}

func (s *Store) UpdateCommission(ctx context.Context, commission *models.Commission) error {
	return s.write(func() error { return s.next.UpdateCommission(ctx, commission) }, storage.Commissions)
}

func (s *Store) DeleteCommission(ctx context.Context, id string) error {
	return s.write(func() error { return s.next.DeleteCommission(ctx, id) }, storage.Commissions, storage.Members)
}

func (s *Store) ListCommissions(ctx context.Context) ([]models.Commission, error) {
	return load(s, storage.Commissions, cloneCommission, func() ([]models.Commission, error) { return s.next.ListCommissions(ctx) })
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	return s.write(func() error { return s.next.CreateEvent(ctx, event) }, storage.Events)
}

func (s *Store) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return s.next.GetEvent(ctx, id)
}

func (s *Store) UpdateEvent(ctx context.Context, event *models.Event) error {
	return s.write(func() error { return s.next.UpdateEvent(ctx, event) }, storage.Events)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	return s.write(func() error { return s.next.DeleteEvent(ctx, id) },
		storage.Events, storage.Cotisations, storage.Transactions)
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	return load(s, storage.Events, nil, func() ([]models.Event, error) { return s.next.ListEvents(ctx) })
}

func (s *Store) CreateCotisation(ctx context.Context, cotisation *models.Cotisation) error {
	return s.write(func() error { return s.next.CreateCotisation(ctx, cotisation) }, storage.Cotisations)
}

func (s *Store) FindCotisation(ctx context.Context, memberID, eventID string) (*models.Cotisation, error) {
	return s.next.FindCotisation(ctx, memberID, eventID)
}

func (s *Store) UpdateCotisation(ctx context.Context, id string, update storage.PaymentUpdate) error {
	return s.write(func() error { return s.next.UpdateCotisation(ctx, id, update) }, storage.Cotisations)
}

func (s *Store) ListCotisations(ctx context.Context) ([]models.Cotisation, error) {
	return load(s, storage.Cotisations, cloneCotisation, func() ([]models.Cotisation, error) { return s.next.ListCotisations(ctx) })
}

func (s *Store) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	return s.write(func() error { return s.next.CreateTransaction(ctx, transaction) }, storage.Transactions)
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	return s.write(func() error { return s.next.DeleteTransaction(ctx, id) }, storage.Transactions)
}

func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return load(s, storage.Transactions, nil, func() ([]models.Transaction, error) { return s.next.ListTransactions(ctx) })
}

func (s *Store) AddReportRecord(ctx context.Context, record *models.ReportRecord) error {
	return s.write(func() error { return s.next.AddReportRecord(ctx, record) }, storage.ReportHistory)
}

// ListReportRecords is not cached; the limit makes it a query rather than a collection read.
func (s *Store) ListReportRecords(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	return s.next.ListReportRecords(ctx, limit)
}

func (s *Store) GetSecurityCodes(ctx context.Context) (*models.SecurityCodes, error) {
	return s.next.GetSecurityCodes(ctx)
}

func (s *Store) SaveSecurityCodes(ctx context.Context, codes *models.SecurityCodes) error {
	return s.next.SaveSecurityCodes(ctx, codes)
}

func (s *Store) ClearLedger(ctx context.Context) error {
	return s.write(func() error { return s.next.ClearLedger(ctx) },
		storage.Events, storage.Cotisations, storage.Transactions, storage.ReportHistory)
}

func (s *Store) ClearAll(ctx context.Context) error {
	return s.write(func() error { return s.next.ClearAll(ctx) },
		storage.Members, storage.Commissions, storage.Events, storage.Cotisations,
		storage.Transactions, storage.ReportHistory)
}

func (s *Store) Close() error {
	return s.next.Close()
}
