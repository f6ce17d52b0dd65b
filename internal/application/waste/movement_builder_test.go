package waste

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"github.com/wasteworks/backend/internal/domain/waste"
	"go.uber.org/zap"
)

type staticReferenceData struct{}

func (staticReferenceData) CustomerLocation(_ context.Context, _, _ uuid.UUID) uuid.UUID {
	return stock.DefaultCustomerLocation().ID
}

func (staticReferenceData) WarehouseLocation() uuid.UUID {
	return stock.DefaultWarehouseLocation().ID
}

func buildTestReception(t *testing.T, lines ...waste.LineInput) *waste.Reception {
	t.Helper()
	reception, err := waste.NewReception(uuid.New(), "REC-2024-00001", uuid.New(), nil, time.Now())
	require.NoError(t, err)
	for _, line := range lines {
		_, err := reception.AddLine(line)
		require.NoError(t, err)
	}
	return reception
}

func lotTrackedProduct(t *testing.T, tenantID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, "WO-01", "Waste Oil", "kg", catalog.ProductTypeStorable)
	require.NoError(t, err)
	product.EnableLotTracking()
	return product
}

func TestMovementBuilderBuild(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("two lines produce two items with per-line lots", func(t *testing.T) {
		productA := uuid.New()
		productB := uuid.New()
		reception := buildTestReception(t,
			waste.LineInput{
				ProductID:   productA,
				ProductName: "[WO-01] Waste Oil",
				OriginDesc:  "Drums",
				LotLabel:    "M-001",
				Quantity:    decimal.NewFromInt(3),
				Unit:        "kg",
			},
			waste.LineInput{
				ProductID:   productB,
				ProductName: "[SL-02] Sludge",
				OriginDesc:  "Tank",
				Quantity:    decimal.NewFromInt(1),
				Unit:        "kg",
			},
		)

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, reception.TenantID, productA, "M-001").Return(nil, shared.ErrNotFound)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDForTenant", ctx, reception.TenantID, productA).
			Return(lotTrackedProduct(t, reception.TenantID), nil)

		builder := NewMovementBuilder(staticReferenceData{}, NewLotResolver(lotRepo), productRepo, logger)
		movement, err := builder.Build(ctx, reception)
		require.NoError(t, err)

		assert.Equal(t, stock.MovementTypeInbound, movement.Type)
		assert.Equal(t, "REC-2024-00001", movement.Origin)
		assert.Equal(t, stock.DefaultCustomerLocation().ID, movement.SourceLocationID)
		assert.Equal(t, stock.DefaultWarehouseLocation().ID, movement.DestLocationID)
		require.Len(t, movement.Items, 2)

		assert.Equal(t, "M-001", movement.Items[0].Lines[0].LotName)
		assert.Nil(t, movement.Items[0].Lines[0].LotID)
		assert.False(t, movement.Items[1].Lines[0].HasLot())
	})

	t.Run("existing lot attached by identity", func(t *testing.T) {
		productID := uuid.New()
		reception := buildTestReception(t, waste.LineInput{
			ProductID:   productID,
			ProductName: "[WO-01] Waste Oil",
			OriginDesc:  "Drums",
			LotLabel:    "M-001",
			Quantity:    decimal.NewFromInt(3),
			Unit:        "kg",
		})

		existing, err := stock.NewLot(reception.TenantID, "M-001", productID)
		require.NoError(t, err)

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, reception.TenantID, productID, "M-001").Return(existing, nil)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDForTenant", ctx, reception.TenantID, productID).
			Return(lotTrackedProduct(t, reception.TenantID), nil)

		builder := NewMovementBuilder(staticReferenceData{}, NewLotResolver(lotRepo), productRepo, logger)
		movement, err := builder.Build(ctx, reception)
		require.NoError(t, err)

		require.NotNil(t, movement.Items[0].Lines[0].LotID)
		assert.Equal(t, existing.ID, *movement.Items[0].Lines[0].LotID)
		assert.Empty(t, movement.Items[0].Lines[0].LotName)
	})

	t.Run("tracking mode switched for lot-labelled line", func(t *testing.T) {
		productID := uuid.New()
		reception := buildTestReception(t, waste.LineInput{
			ProductID:   productID,
			ProductName: "[WO-01] Waste Oil",
			OriginDesc:  "Drums",
			LotLabel:    "M-001",
			Quantity:    decimal.NewFromInt(3),
			Unit:        "kg",
		})

		untracked, err := catalog.NewProduct(reception.TenantID, "WO-01", "Waste Oil", "kg", catalog.ProductTypeStorable)
		require.NoError(t, err)

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, reception.TenantID, productID, "M-001").Return(nil, shared.ErrNotFound)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDForTenant", ctx, reception.TenantID, productID).Return(untracked, nil)
		productRepo.On("UpdateTracking", ctx, reception.TenantID, untracked.ID, catalog.TrackingLot).Return(nil)

		builder := NewMovementBuilder(staticReferenceData{}, NewLotResolver(lotRepo), productRepo, logger)
		_, err = builder.Build(ctx, reception)
		require.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("tracking switch failure does not abort build", func(t *testing.T) {
		productID := uuid.New()
		reception := buildTestReception(t, waste.LineInput{
			ProductID:   productID,
			ProductName: "[WO-01] Waste Oil",
			OriginDesc:  "Drums",
			LotLabel:    "M-001",
			Quantity:    decimal.NewFromInt(3),
			Unit:        "kg",
		})

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, reception.TenantID, productID, "M-001").Return(nil, shared.ErrNotFound)

		productRepo := new(MockProductRepository)
		productRepo.On("FindByIDForTenant", ctx, reception.TenantID, productID).Return(nil, errors.New("connection lost"))

		builder := NewMovementBuilder(staticReferenceData{}, NewLotResolver(lotRepo), productRepo, logger)
		movement, err := builder.Build(ctx, reception)
		require.NoError(t, err)
		require.Len(t, movement.Items, 1)
	})

	t.Run("lot lookup failure aborts build", func(t *testing.T) {
		productID := uuid.New()
		reception := buildTestReception(t, waste.LineInput{
			ProductID:   productID,
			ProductName: "[WO-01] Waste Oil",
			OriginDesc:  "Drums",
			LotLabel:    "M-001",
			Quantity:    decimal.NewFromInt(3),
			Unit:        "kg",
		})

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection lost"))

		builder := NewMovementBuilder(staticReferenceData{}, NewLotResolver(lotRepo), new(MockProductRepository), logger)
		_, err := builder.Build(ctx, reception)
		assert.Error(t, err)
	})
}
