package waste

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EventTypeSaleOrderConfirmed is the integration event published by the
// sales subsystem when an order is confirmed
const EventTypeSaleOrderConfirmed = "sales.order.confirmed"

// SaleOrderConfirmedEvent is the consumed contract of the sales subsystem's
// order confirmation. Only orders flagged as waste collection trigger a
// reception.
type SaleOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID           uuid.UUID `json:"order_id"`
	OrderNumber       string    `json:"order_number"`
	PartnerID         uuid.UUID `json:"partner_id"`
	IsWasteCollection bool      `json:"is_waste_collection"`
}

// NewSaleOrderConfirmedEvent creates a new SaleOrderConfirmedEvent
func NewSaleOrderConfirmedEvent(tenantID, orderID uuid.UUID, orderNumber string, partnerID uuid.UUID, isWasteCollection bool) *SaleOrderConfirmedEvent {
	return &SaleOrderConfirmedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeSaleOrderConfirmed, "SaleOrder", orderID, tenantID),
		OrderID:           orderID,
		OrderNumber:       orderNumber,
		PartnerID:         partnerID,
		IsWasteCollection: isWasteCollection,
	}
}

// SaleOrderConfirmedHandler creates a draft reception when a waste
// collection order is confirmed
type SaleOrderConfirmedHandler struct {
	receptionService *ReceptionService
	logger           *zap.Logger
}

// NewSaleOrderConfirmedHandler creates a new handler for sale order confirmed events
func NewSaleOrderConfirmedHandler(receptionService *ReceptionService, logger *zap.Logger) *SaleOrderConfirmedHandler {
	return &SaleOrderConfirmedHandler{
		receptionService: receptionService,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SaleOrderConfirmedHandler) EventTypes() []string {
	return []string{EventTypeSaleOrderConfirmed}
}

// Handle creates one draft reception for the confirmed order
func (h *SaleOrderConfirmedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	confirmedEvent, ok := event.(*SaleOrderConfirmedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", EventTypeSaleOrderConfirmed),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			EventTypeSaleOrderConfirmed, event.EventType())
	}

	if !confirmedEvent.IsWasteCollection {
		h.logger.Debug("order is not a waste collection, skipping reception",
			zap.String("order_number", confirmedEvent.OrderNumber),
		)
		return nil
	}

	orderID := confirmedEvent.OrderID
	resp, err := h.receptionService.Create(ctx, confirmedEvent.TenantID(), CreateReceptionRequest{
		PartnerID:   confirmedEvent.PartnerID,
		SaleOrderID: &orderID,
	})
	if err != nil {
		h.logger.Error("failed to create reception for confirmed order",
			zap.String("order_id", confirmedEvent.OrderID.String()),
			zap.String("order_number", confirmedEvent.OrderNumber),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("reception created for confirmed waste collection order",
		zap.String("order_number", confirmedEvent.OrderNumber),
		zap.String("reception_number", resp.ReceptionNumber),
	)
	return nil
}

// Ensure SaleOrderConfirmedHandler implements shared.EventHandler
var _ shared.EventHandler = (*SaleOrderConfirmedHandler)(nil)
