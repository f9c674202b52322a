// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/bayusbkt/patungan-bay/internal/domain"
	"github.com/bayusbkt/patungan-bay/internal/domain/model"
	"github.com/bayusbkt/patungan-bay/internal/domain/ports/repository"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// mockTxManager serializes every WithTx body with one mutex, which is the
// in-memory stand-in for the per-product advisory lock.
type mockTxManager struct {
	mu sync.Mutex
}

func (m *mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, repository.NoTX)
}

// memProductRepo is a small in-memory implementation used by unit tests.
type memProductRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Product
	saveErr error // used by tests to simulate save failures
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{store: make(map[string]*model.Product)}
}

func (m *memProductRepo) Save(ctx context.Context, _ repository.Tx, p *model.Product) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memProductRepo) Update(ctx context.Context, tx repository.Tx, p *model.Product) error {
	return m.Save(ctx, tx, p)
}

func (m *memProductRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) ListAll(ctx context.Context, _ repository.Tx) ([]*model.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Product
	for _, p := range m.store {
		if p.DeletedAt != nil {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memProductRepo) SoftDelete(ctx context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (m *memProductRepo) Restore(ctx context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.DeletedAt = nil
	return nil
}

// memSubRepo provides in-memory bookings for tests, including the stats
// aggregation.
type memSubRepo struct {
	mu    sync.RWMutex
	store map[string]*model.ProductSubscription
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{store: make(map[string]*model.ProductSubscription)}
}

func (m *memSubRepo) Save(ctx context.Context, _ repository.Tx, s *model.ProductSubscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.store {
		if existing.DeletedAt == nil && existing.BookingTrxID == s.BookingTrxID && existing.ID != s.ID {
			return domain.ErrDuplicateBookingTrx
		}
	}
	cp := *s
	m.store[s.ID] = &cp
	return nil
}

func (m *memSubRepo) Update(ctx context.Context, tx repository.Tx, s *model.ProductSubscription) error {
	return m.Save(ctx, tx, s)
}

func (m *memSubRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.ProductSubscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.store[id]
	if !ok || s.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubRepo) FindByBookingTrxID(ctx context.Context, _ repository.Tx, trxID string) (*model.ProductSubscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.store {
		if s.DeletedAt == nil && s.BookingTrxID == trxID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memSubRepo) ListAll(ctx context.Context, _ repository.Tx) ([]*model.ProductSubscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.ProductSubscription
	for _, s := range m.store {
		if s.DeletedAt != nil {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSubRepo) ListByProduct(ctx context.Context, _ repository.Tx, productID string) ([]*model.ProductSubscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.ProductSubscription
	for _, s := range m.store {
		if s.DeletedAt != nil || s.ProductID != productID {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memSubRepo) CountUnpaid(ctx context.Context, _ repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, s := range m.store {
		if s.DeletedAt == nil && !s.IsPaid {
			n++
		}
	}
	return n, nil
}

func (m *memSubRepo) SoftDelete(ctx context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store[id]
	if !ok || s.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

func (m *memSubRepo) Restore(ctx context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	// same rule as the partial unique index: the trx id must be free among
	// live bookings before the row comes back
	for _, other := range m.store {
		if other.ID != id && other.DeletedAt == nil && other.BookingTrxID == s.BookingTrxID {
			return domain.ErrDuplicateBookingTrx
		}
	}
	s.DeletedAt = nil
	return nil
}

func (m *memSubRepo) Stats(ctx context.Context, _ repository.Tx) (*repository.SubscriptionStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := &repository.SubscriptionStats{}
	for _, s := range m.store {
		if s.DeletedAt != nil {
			continue
		}
		st.Total++
		if s.IsPaid {
			st.Approved++
			st.Revenue += s.TotalAmount
		}
	}
	return st, nil
}

// memGroupRepo keeps groups with their messages and participants.
type memGroupRepo struct {
	mu           sync.RWMutex
	groups       map[string]*model.SubscriptionGroup
	messages     map[string][]*model.GroupMessage
	participants map[string][]*model.GroupParticipant
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{
		groups:       make(map[string]*model.SubscriptionGroup),
		messages:     make(map[string][]*model.GroupMessage),
		participants: make(map[string][]*model.GroupParticipant),
	}
}

func (m *memGroupRepo) Save(ctx context.Context, _ repository.Tx, g *model.SubscriptionGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *memGroupRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.SubscriptionGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.groups[id]
	if !ok || g.DeletedAt != nil {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memGroupRepo) FindBySubscription(ctx context.Context, _ repository.Tx, subscriptionID string) (*model.SubscriptionGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for groupID, ps := range m.participants {
		g, ok := m.groups[groupID]
		if !ok || g.DeletedAt != nil {
			continue
		}
		for _, p := range ps {
			if p.SubscriptionID == subscriptionID {
				cp := *g
				return &cp, nil
			}
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memGroupRepo) LockProduct(ctx context.Context, _ repository.Tx, productID string) error {
	// serialization is handled by mockTxManager's mutex
	return nil
}

func (m *memGroupRepo) FindOpenByProduct(ctx context.Context, _ repository.Tx, productID string) ([]*model.SubscriptionGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.SubscriptionGroup
	for _, g := range m.groups {
		if g.DeletedAt != nil || g.ProductID != productID || g.ParticipantCount >= g.MaxCapacity {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memGroupRepo) IncrementParticipant(ctx context.Context, _ repository.Tx, groupID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[groupID]
	if !ok || g.DeletedAt != nil {
		return domain.ErrNotFound
	}
	if g.ParticipantCount >= g.MaxCapacity {
		return domain.ErrCapacityExceeded
	}
	g.ParticipantCount++
	g.UpdatedAt = time.Now()
	return nil
}

func (m *memGroupRepo) ListAll(ctx context.Context, _ repository.Tx) ([]*model.SubscriptionGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.SubscriptionGroup
	for _, g := range m.groups {
		if g.DeletedAt != nil {
			continue
		}
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memGroupRepo) ListByProduct(ctx context.Context, _ repository.Tx, productID string) ([]*model.SubscriptionGroup, error) {
	all, _ := m.ListAll(ctx, repository.NoTX)
	var out []*model.SubscriptionGroup
	for _, g := range all {
		if g.ProductID == productID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *memGroupRepo) SoftDelete(ctx context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[id]
	if !ok || g.DeletedAt != nil {
		return domain.ErrNotFound
	}
	now := time.Now()
	g.DeletedAt = &now
	return nil
}

func (m *memGroupRepo) AddMessage(ctx context.Context, _ repository.Tx, msg *model.GroupMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	m.messages[msg.GroupID] = append(m.messages[msg.GroupID], &cp)
	return nil
}

func (m *memGroupRepo) ListMessages(ctx context.Context, _ repository.Tx, groupID string) ([]*model.GroupMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.GroupMessage
	for _, msg := range m.messages[groupID] {
		if msg.DeletedAt != nil {
			continue
		}
		cp := *msg
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memGroupRepo) AddParticipant(ctx context.Context, _ repository.Tx, p *model.GroupParticipant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.participants[p.GroupID] = append(m.participants[p.GroupID], &cp)
	return nil
}

func (m *memGroupRepo) ListParticipants(ctx context.Context, _ repository.Tx, groupID string) ([]*model.GroupParticipant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.GroupParticipant
	for _, p := range m.participants[groupID] {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memGroupRepo) CountByFullness(ctx context.Context, _ repository.Tx) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	open, full := 0, 0
	for _, g := range m.groups {
		if g.DeletedAt != nil {
			continue
		}
		if g.ParticipantCount >= g.MaxCapacity {
			full++
		} else {
			open++
		}
	}
	return open, full, nil
}

// mockNotifier records approvals and can fail on demand.
type mockNotifier struct {
	mu   sync.Mutex
	seen []string
	fail error
}

func (n *mockNotifier) Name() string { return "mock" }

func (n *mockNotifier) NotifyApproved(ctx context.Context, sub *model.ProductSubscription) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.seen = append(n.seen, sub.ID)
	return nil
}

var (
	_ repository.ProductRepository      = (*memProductRepo)(nil)
	_ repository.SubscriptionRepository = (*memSubRepo)(nil)
	_ repository.GroupRepository        = (*memGroupRepo)(nil)
	_ repository.TransactionManager     = (*mockTxManager)(nil)
)
