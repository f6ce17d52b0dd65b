package waste

import (
	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// Event types for the waste context
const (
	EventTypeReceptionCreated   = "waste.reception.created"
	EventTypeReceptionConfirmed = "waste.reception.confirmed"
	EventTypeReceptionCancelled = "waste.reception.cancelled"
)

// ReceptionCreatedEvent is published when a new reception is created
type ReceptionCreatedEvent struct {
	shared.BaseDomainEvent
	ReceptionNumber string     `json:"reception_number"`
	SaleOrderID     *uuid.UUID `json:"sale_order_id,omitempty"`
	PartnerID       uuid.UUID  `json:"partner_id"`
}

// NewReceptionCreatedEvent creates a new ReceptionCreatedEvent
func NewReceptionCreatedEvent(reception *Reception) *ReceptionCreatedEvent {
	return &ReceptionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceptionCreated, "Reception", reception.ID, reception.TenantID),
		ReceptionNumber: reception.ReceptionNumber,
		SaleOrderID:     reception.SaleOrderID,
		PartnerID:       reception.PartnerID,
	}
}

// ReceptionConfirmedEvent is published when a reception is confirmed and its
// inventory movement has been created
type ReceptionConfirmedEvent struct {
	shared.BaseDomainEvent
	ReceptionNumber string    `json:"reception_number"`
	MovementID      uuid.UUID `json:"movement_id"`
	LineCount       int       `json:"line_count"`
}

// NewReceptionConfirmedEvent creates a new ReceptionConfirmedEvent
func NewReceptionConfirmedEvent(reception *Reception) *ReceptionConfirmedEvent {
	var movementID uuid.UUID
	if reception.MovementID != nil {
		movementID = *reception.MovementID
	}
	return &ReceptionConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceptionConfirmed, "Reception", reception.ID, reception.TenantID),
		ReceptionNumber: reception.ReceptionNumber,
		MovementID:      movementID,
		LineCount:       len(reception.Lines),
	}
}

// ReceptionCancelledEvent is published when a reception is cancelled
type ReceptionCancelledEvent struct {
	shared.BaseDomainEvent
	ReceptionNumber string `json:"reception_number"`
}

// NewReceptionCancelledEvent creates a new ReceptionCancelledEvent
func NewReceptionCancelledEvent(reception *Reception) *ReceptionCancelledEvent {
	return &ReceptionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceptionCancelled, "Reception", reception.ID, reception.TenantID),
		ReceptionNumber: reception.ReceptionNumber,
	}
}
