package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
)

// MockLotRepository is a mock implementation of stock.LotRepository
type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) FindByLabel(ctx context.Context, tenantID, productID uuid.UUID, label string) (*stock.Lot, error) {
	args := m.Called(ctx, tenantID, productID, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Lot), args.Error(1)
}

func (m *MockLotRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*stock.Lot, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Lot), args.Error(1)
}

func (m *MockLotRepository) FindExpiringOn(ctx context.Context, day time.Time) ([]stock.Lot, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.Lot), args.Error(1)
}

func (m *MockLotRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[stock.Lot], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[stock.Lot]), args.Error(1)
}

func (m *MockLotRepository) Save(ctx context.Context, lot *stock.Lot) error {
	args := m.Called(ctx, lot)
	return args.Error(0)
}

// MockReminderRepository is a mock implementation of stock.ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) ExistsOpenForLot(ctx context.Context, lotID uuid.UUID, subjectSubstring string) (bool, error) {
	args := m.Called(ctx, lotID, subjectSubstring)
	return args.Bool(0), args.Error(1)
}

func (m *MockReminderRepository) Save(ctx context.Context, reminder *stock.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateTracking(ctx context.Context, tenantID, id uuid.UUID, tracking catalog.TrackingMode) error {
	args := m.Called(ctx, tenantID, id, tracking)
	return args.Error(0)
}
