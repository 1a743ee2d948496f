package mocks

import (
	"context"
	"sync"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
)

// MockOrderStore is an in-memory order store. The Fn fields override the
// default behaviour of each method.
type MockOrderStore struct {
	mu       sync.RWMutex
	orders   map[string]*domain.Order
	metadata map[string]map[string]string

	StatusChanges []domain.OrderStatus
	PaidRefs      []string

	GetOrderFn       func(ctx context.Context, number string) (*domain.Order, error)
	SetStatusFn      func(ctx context.Context, order *domain.Order, status domain.OrderStatus) error
	MarkPaidFn       func(ctx context.Context, order *domain.Order, txnRef string) error
	AttachMetadataFn func(ctx context.Context, order *domain.Order, key, value string) error
}

func NewMockOrderStore(orders ...*domain.Order) *MockOrderStore {
	m := &MockOrderStore{
		orders:   make(map[string]*domain.Order),
		metadata: make(map[string]map[string]string),
	}
	for _, o := range orders {
		m.orders[o.Number] = o
	}
	return m
}

// Add stores order under its number, replacing any previous one.
func (m *MockOrderStore) Add(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.Number] = order
}

func (m *MockOrderStore) GetOrder(ctx context.Context, number string) (*domain.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[number]; ok {
		return o, nil
	}
	return nil, domain.NewOrderNotFoundError(number)
}

func (m *MockOrderStore) SetStatus(ctx context.Context, order *domain.Order, status domain.OrderStatus) error {
	if m.SetStatusFn != nil {
		return m.SetStatusFn(ctx, order, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order.Status = status
	m.StatusChanges = append(m.StatusChanges, status)
	return nil
}

func (m *MockOrderStore) MarkPaid(ctx context.Context, order *domain.Order, txnRef string) error {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, order, txnRef)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order.Status = domain.OrderProcessing
	order.TransactionRef = &txnRef
	m.PaidRefs = append(m.PaidRefs, txnRef)
	return nil
}

func (m *MockOrderStore) AttachMetadata(ctx context.Context, order *domain.Order, key, value string) error {
	if m.AttachMetadataFn != nil {
		return m.AttachMetadataFn(ctx, order, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metadata[order.Number] == nil {
		m.metadata[order.Number] = make(map[string]string)
	}
	m.metadata[order.Number][key] = value
	return nil
}

func (m *MockOrderStore) Metadata(_ context.Context, order *domain.Order, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.metadata[order.Number][key]
	return v, ok, nil
}
