package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jewelscan/internal/domain"
)

// MockItemRepo is a mock implementation of port.ItemRepository.
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) CreateBatch(ctx context.Context, items []domain.JewelleryItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockItemRepo) GetByCode(ctx context.Context, code string) (*domain.JewelleryItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JewelleryItem), args.Error(1)
}

func (m *MockItemRepo) List(ctx context.Context, filter domain.ItemFilter, offset, limit int) ([]domain.JewelleryItem, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JewelleryItem), args.Int(1), args.Error(2)
}
