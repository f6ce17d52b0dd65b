package waste

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
)

func TestLotResolverResolve(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	productID := uuid.New()

	t.Run("existing lot found", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		existing, err := stock.NewLot(tenantID, "MAN-0042", productID)
		require.NoError(t, err)
		lotRepo.On("FindByLabel", ctx, tenantID, productID, "MAN-0042").Return(existing, nil)

		resolver := NewLotResolver(lotRepo)
		resolution, err := resolver.Resolve(ctx, tenantID, productID, "MAN-0042")
		require.NoError(t, err)
		assert.True(t, resolution.Found)
		assert.Equal(t, existing.ID, resolution.Lot.ID)
		assert.Equal(t, "MAN-0042", resolution.Label)
	})

	t.Run("whitespace variations resolve identically", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		existing, err := stock.NewLot(tenantID, "MAN-0042", productID)
		require.NoError(t, err)
		lotRepo.On("FindByLabel", ctx, tenantID, productID, "MAN-0042").Return(existing, nil).Twice()

		resolver := NewLotResolver(lotRepo)
		first, err := resolver.Resolve(ctx, tenantID, productID, "  MAN-0042")
		require.NoError(t, err)
		second, err := resolver.Resolve(ctx, tenantID, productID, "MAN-0042  ")
		require.NoError(t, err)

		assert.Equal(t, first.Lot.ID, second.Lot.ID)
		lotRepo.AssertExpectations(t)
	})

	t.Run("unknown label returns normalized name", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, tenantID, productID, "M-001").Return(nil, shared.ErrNotFound)

		resolver := NewLotResolver(lotRepo)
		resolution, err := resolver.Resolve(ctx, tenantID, productID, " M-001 ")
		require.NoError(t, err)
		assert.False(t, resolution.Found)
		assert.Nil(t, resolution.Lot)
		assert.Equal(t, "M-001", resolution.Label)
	})

	t.Run("empty label rejected", func(t *testing.T) {
		resolver := NewLotResolver(new(MockLotRepository))
		_, err := resolver.Resolve(ctx, tenantID, productID, "   ")
		assert.Error(t, err)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		lotRepo := new(MockLotRepository)
		lotRepo.On("FindByLabel", ctx, tenantID, productID, "M-001").Return(nil, errors.New("connection lost"))

		resolver := NewLotResolver(lotRepo)
		_, err := resolver.Resolve(ctx, tenantID, productID, "M-001")
		assert.Error(t, err)
	})
}
