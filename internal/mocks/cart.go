package mocks

import (
	"context"
	"sync"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
)

type MockCart struct {
	mu      sync.Mutex
	Lines   []domain.CartLine
	Cleared int

	CurrentLinesFn func(ctx context.Context) ([]domain.CartLine, error)
	ClearFn        func(ctx context.Context) error
}

func NewMockCart(lines ...domain.CartLine) *MockCart {
	return &MockCart{Lines: lines}
}

func (m *MockCart) CurrentLines(ctx context.Context) ([]domain.CartLine, error) {
	if m.CurrentLinesFn != nil {
		return m.CurrentLinesFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CartLine(nil), m.Lines...), nil
}

func (m *MockCart) Clear(ctx context.Context) error {
	if m.ClearFn != nil {
		return m.ClearFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = nil
	m.Cleared++
	return nil
}
