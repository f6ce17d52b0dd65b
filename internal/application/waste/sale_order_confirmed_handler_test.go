package waste

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wasteworks/backend/internal/domain/waste"
	"go.uber.org/zap"
)

func TestSaleOrderConfirmedHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("waste collection order creates draft reception", func(t *testing.T) {
		f := newServiceFixture()
		f.receptionRepo.On("GenerateReceptionNumber", ctx, tenantID).Return("REC-2024-00010", nil)
		f.receptionRepo.On("Save", ctx, mock.AnythingOfType("*waste.Reception")).Return(nil)

		handler := NewSaleOrderConfirmedHandler(f.service, zap.NewNop())
		event := NewSaleOrderConfirmedEvent(tenantID, uuid.New(), "SO-2024-00042", uuid.New(), true)

		require.NoError(t, handler.Handle(ctx, event))
		f.receptionRepo.AssertExpectations(t)
	})

	t.Run("ordinary order skipped", func(t *testing.T) {
		f := newServiceFixture()
		handler := NewSaleOrderConfirmedHandler(f.service, zap.NewNop())
		event := NewSaleOrderConfirmedEvent(tenantID, uuid.New(), "SO-2024-00043", uuid.New(), false)

		require.NoError(t, handler.Handle(ctx, event))
		f.receptionRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})

	t.Run("unexpected event type rejected", func(t *testing.T) {
		f := newServiceFixture()
		handler := NewSaleOrderConfirmedHandler(f.service, zap.NewNop())

		reception, err := waste.NewReception(tenantID, "REC-2024-00011", uuid.New(), nil, time.Now())
		require.NoError(t, err)
		err = handler.Handle(ctx, waste.NewReceptionCreatedEvent(reception))
		assert.Error(t, err)
	})
}
