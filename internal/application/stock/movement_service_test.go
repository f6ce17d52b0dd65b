package stock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"go.uber.org/zap"
)

func newInboundWithLotName(t *testing.T, lotName string) *stock.Movement {
	t.Helper()
	m, err := stock.NewInboundMovement(
		uuid.New(),
		"REC-2024-00001",
		uuid.New(),
		stock.DefaultCustomerLocation().ID,
		stock.DefaultWarehouseLocation().ID,
		time.Now(),
	)
	require.NoError(t, err)
	_, err = m.AddItem(uuid.New(), "Waste Oil", decimal.NewFromInt(10), "kg", nil, lotName)
	require.NoError(t, err)
	require.NoError(t, m.Confirm())
	return m
}

func TestMovementServiceReserve(t *testing.T) {
	ctx := context.Background()
	service := NewMovementService(new(MockLotRepository), zap.NewNop())

	t.Run("inbound reserves full demand", func(t *testing.T) {
		movement := newInboundWithLotName(t, "")
		require.NoError(t, service.Reserve(ctx, movement))
		assert.Equal(t, stock.MovementStatusAssigned, movement.Status)
		assert.True(t, movement.Items[0].FullyReserved())
	})

	t.Run("outbound rejected", func(t *testing.T) {
		movement := newInboundWithLotName(t, "")
		movement.Type = stock.MovementTypeOutbound
		assert.Error(t, service.Reserve(ctx, movement))
	})
}

func TestMovementServiceValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("materializes lot by name", func(t *testing.T) {
		movement := newInboundWithLotName(t, "M-001")
		productID := movement.Items[0].ProductID

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, movement.TenantID, productID, "M-001").Return(nil, shared.ErrNotFound)
		lotRepo.On("Save", ctx, mock.AnythingOfType("*stock.Lot")).Return(nil)

		service := NewMovementService(lotRepo, zap.NewNop())
		require.NoError(t, service.Reserve(ctx, movement))

		backorder, err := service.Validate(ctx, movement)
		require.NoError(t, err)
		assert.Nil(t, backorder)
		assert.True(t, movement.IsDone())

		line := movement.Items[0].Lines[0]
		require.NotNil(t, line.LotID)
		assert.Empty(t, line.LotName)
		lotRepo.AssertExpectations(t)
	})

	t.Run("reuses existing lot", func(t *testing.T) {
		movement := newInboundWithLotName(t, "M-001")
		productID := movement.Items[0].ProductID
		existing, err := stock.NewLot(movement.TenantID, "M-001", productID)
		require.NoError(t, err)

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, movement.TenantID, productID, "M-001").Return(existing, nil)

		service := NewMovementService(lotRepo, zap.NewNop())
		require.NoError(t, service.Reserve(ctx, movement))

		_, err = service.Validate(ctx, movement)
		require.NoError(t, err)
		require.NotNil(t, movement.Items[0].Lines[0].LotID)
		assert.Equal(t, existing.ID, *movement.Items[0].Lines[0].LotID)
		lotRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("concurrent creation surfaces lot conflict", func(t *testing.T) {
		movement := newInboundWithLotName(t, "M-001")
		productID := movement.Items[0].ProductID

		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, movement.TenantID, productID, "M-001").Return(nil, shared.ErrNotFound)
		lotRepo.On("Save", ctx, mock.AnythingOfType("*stock.Lot")).Return(shared.ErrAlreadyExists)

		service := NewMovementService(lotRepo, zap.NewNop())
		require.NoError(t, service.Reserve(ctx, movement))

		_, err := service.Validate(ctx, movement)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LOT_CONFLICT", domainErr.Code)
		assert.False(t, movement.IsDone())
	})
}
