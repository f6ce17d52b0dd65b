package waste

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/partner"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"github.com/wasteworks/backend/internal/domain/waste"
)

// MockReceptionRepository is a mock implementation of ReceptionRepository
type MockReceptionRepository struct {
	mock.Mock
}

func (m *MockReceptionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*waste.Reception, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*waste.Reception), args.Error(1)
}

func (m *MockReceptionRepository) FindBySaleOrder(ctx context.Context, tenantID, saleOrderID uuid.UUID) ([]waste.Reception, error) {
	args := m.Called(ctx, tenantID, saleOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]waste.Reception), args.Error(1)
}

func (m *MockReceptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[waste.Reception], error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[waste.Reception]), args.Error(1)
}

func (m *MockReceptionRepository) Save(ctx context.Context, reception *waste.Reception) error {
	args := m.Called(ctx, reception)
	return args.Error(0)
}

func (m *MockReceptionRepository) SaveWithLock(ctx context.Context, reception *waste.Reception) error {
	args := m.Called(ctx, reception)
	return args.Error(0)
}

func (m *MockReceptionRepository) GenerateReceptionNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockHandlingTypeRepository is a mock implementation of HandlingTypeRepository
type MockHandlingTypeRepository struct {
	mock.Mock
}

func (m *MockHandlingTypeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*waste.HandlingType, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*waste.HandlingType), args.Error(1)
}

func (m *MockHandlingTypeRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*waste.HandlingType, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*waste.HandlingType), args.Error(1)
}

func (m *MockHandlingTypeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]waste.HandlingType, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]waste.HandlingType), args.Error(1)
}

func (m *MockHandlingTypeRepository) Save(ctx context.Context, handlingType *waste.HandlingType) error {
	args := m.Called(ctx, handlingType)
	return args.Error(0)
}

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

// MockMovementRepository is a mock implementation of stock.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*stock.Movement, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Movement), args.Error(1)
}

func (m *MockMovementRepository) Save(ctx context.Context, movement *stock.Movement) error {
	args := m.Called(ctx, movement)
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

// MockPartnerRepository is a mock implementation of partner.PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockInventoryGateway is a mock implementation of InventoryGateway
type MockInventoryGateway struct {
	mock.Mock
}

func (m *MockInventoryGateway) Confirm(ctx context.Context, movement *stock.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockInventoryGateway) Reserve(ctx context.Context, movement *stock.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockInventoryGateway) Validate(ctx context.Context, movement *stock.Movement) (*stock.BackorderRequest, error) {
	args := m.Called(ctx, movement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.BackorderRequest), args.Error(1)
}

func (m *MockInventoryGateway) ProcessBackorder(ctx context.Context, movement *stock.Movement, policy stock.BackorderPolicy) error {
	args := m.Called(ctx, movement, policy)
	return args.Error(0)
}

func (m *MockInventoryGateway) CancelMovement(ctx context.Context, movement *stock.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
