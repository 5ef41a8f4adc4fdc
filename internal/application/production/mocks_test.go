package production

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/atelier/backend/internal/domain/catalog"
	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// memoryOrderRepository stores copies so that callers never share state with
// what is "persisted"
type memoryOrderRepository struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]*production.ProductionOrder
	next    int
	saveErr error
	lockErr error
	saves   int
}

func newMemoryOrderRepository() *memoryOrderRepository {
	return &memoryOrderRepository{orders: make(map[uuid.UUID]*production.ProductionOrder), next: 1001}
}

func cloneOrder(o *production.ProductionOrder) *production.ProductionOrder {
	c := *o
	c.ClearDomainEvents()
	c.Items = production.CloneItems(o.Items)
	c.ActiveCuttingItems = production.CloneItems(o.ActiveCuttingItems)
	c.Splits = make([]production.OrderSplit, len(o.Splits))
	for i, s := range o.Splits {
		s.Items = production.CloneItems(s.Items)
		c.Splits[i] = s
	}
	return &c
}

func (r *memoryOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (r *memoryOrderRepository) FindByOrderNumber(_ context.Context, number string) (*production.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return cloneOrder(o), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryOrderRepository) matching(filter shared.Filter) []production.ProductionOrder {
	out := make([]production.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		switch v := filter.Filters["status"].(type) {
		case production.OrderStatus:
			if o.Status != v {
				continue
			}
		case []production.OrderStatus:
			found := false
			for _, s := range v {
				found = found || s == o.Status
			}
			if !found {
				continue
			}
		}
		out = append(out, *cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out
}

func (r *memoryOrderRepository) FindAll(_ context.Context, filter shared.Filter) ([]production.ProductionOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matching(filter), nil
}

func (r *memoryOrderRepository) Count(_ context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *memoryOrderRepository) CountByStatus(_ context.Context) (map[production.OrderStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[production.OrderStatus]int64)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *memoryOrderRepository) Save(_ context.Context, order *production.ProductionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		err := r.saveErr
		r.saveErr = nil
		return err
	}
	for _, o := range r.orders {
		if o.OrderNumber == order.OrderNumber {
			return shared.NewDomainError("ALREADY_EXISTS", "taken")
		}
	}
	r.orders[order.ID] = cloneOrder(order)
	r.saves++
	return nil
}

func (r *memoryOrderRepository) SaveWithLock(_ context.Context, order *production.ProductionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lockErr != nil {
		return r.lockErr
	}
	stored, ok := r.orders[order.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if stored.Version != order.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	r.orders[order.ID] = cloneOrder(order)
	r.saves++
	return nil
}

func (r *memoryOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memoryOrderRepository) GenerateOrderNumber(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.next
	r.next++
	return strconv.Itoa(n), nil
}

func (r *memoryOrderRepository) put(order *production.ProductionOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = cloneOrder(order)
}

// MockSeamstressRepository is a mock implementation of SeamstressRepository
type MockSeamstressRepository struct {
	mock.Mock
}

func (m *MockSeamstressRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Seamstress, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Seamstress), args.Error(1)
}

func (m *MockSeamstressRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Seamstress, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]workforce.Seamstress), args.Error(1)
}

func (m *MockSeamstressRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSeamstressRepository) Save(ctx context.Context, s *workforce.Seamstress) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSeamstressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeLocker grants every lock unless busy is set
type fakeLocker struct {
	mu       sync.Mutex
	busy     bool
	locks    int
	unlocked int
}

func (l *fakeLocker) Lock(_ context.Context, _ uuid.UUID) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy {
		return nil, ErrOrderBusy
	}
	l.locks++
	return func() {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
	}, nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

type fakeGenerator struct {
	prompt string
	text   string
	err    error
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

type fakeWriter struct {
	orders []production.ProductionOrder
	err    error
}

func (w *fakeWriter) OrdersWorkbook(orders []production.ProductionOrder, _ time.Time) ([]byte, error) {
	w.orders = orders
	if w.err != nil {
		return nil, w.err
	}
	return []byte(fmt.Sprintf("%d orders", len(orders))), nil
}

type fakeStorage struct {
	key       string
	data      []byte
	uploadErr error
}

func (s *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.key = key
	s.data = data
	return nil
}

func (s *fakeStorage) GenerateDownloadURL(_ context.Context, key string, _ time.Duration) (string, time.Time, error) {
	return "https://files.test/" + key, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
