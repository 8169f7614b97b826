package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jewelscan/internal/domain"
	"jewelscan/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) Parse(raw string) domain.ParsedItem {
	args := m.Called(raw)
	return args.Get(0).(domain.ParsedItem)
}

func (m *MockScanService) ParseBatch(ctx context.Context, raws []string) ([]domain.ParsedItem, error) {
	args := m.Called(ctx, raws)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParsedItem), args.Error(1)
}

func (m *MockScanService) Import(ctx context.Context, input service.ImportInput) (*service.ImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockScanService) Revalidate(edit domain.ItemEdit) service.RevalidateResult {
	args := m.Called(edit)
	return args.Get(0).(service.RevalidateResult)
}

func (m *MockScanService) Confirm(ctx context.Context, input service.ConfirmInput) ([]domain.JewelleryItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JewelleryItem), args.Error(1)
}

func (m *MockScanService) GetItem(ctx context.Context, code string) (*domain.JewelleryItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JewelleryItem), args.Error(1)
}

func (m *MockScanService) ListItems(ctx context.Context, filter domain.ItemFilter, offset, limit int) ([]domain.JewelleryItem, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JewelleryItem), args.Int(1), args.Error(2)
}
