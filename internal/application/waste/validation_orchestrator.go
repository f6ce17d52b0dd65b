package waste

import (
	"context"
	"errors"

	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// ValidationOrchestrator drives a freshly built movement through
// confirm, reserve and validate. Regulatory intake must not be blocked by
// transient inventory edge cases, so automatic validation degrades
// gracefully: the movement is always confirmed and recorded, and a failed
// validation leaves it in a manually resolvable state instead of failing
// the whole reception.
type ValidationOrchestrator struct {
	inventory InventoryGateway
	logger    *zap.Logger
}

// NewValidationOrchestrator creates a new ValidationOrchestrator
func NewValidationOrchestrator(inventory InventoryGateway, logger *zap.Logger) *ValidationOrchestrator {
	return &ValidationOrchestrator{
		inventory: inventory,
		logger:    logger,
	}
}

// Drive confirms the movement, reserves stock and attempts automatic
// validation. skipBackorderPrompts makes a shortfall complete the reserved
// quantity and close out the remainder instead of waiting for a decision.
//
// Error contract: a total reservation failure is fatal and returned to the
// caller. A domain validation failure is not: it is noted on the document
// and the movement is returned unvalidated for manual follow-up.
func (o *ValidationOrchestrator) Drive(ctx context.Context, movement *stock.Movement, skipBackorderPrompts bool) error {
	if err := o.inventory.Confirm(ctx, movement); err != nil {
		return err
	}

	if err := o.inventory.Reserve(ctx, movement); err != nil {
		return err
	}
	if !movement.IsReservable() {
		o.logger.Error("movement not reservable after reservation attempt",
			zap.String("movement_id", movement.ID.String()),
			zap.String("status", movement.Status.String()),
		)
		return shared.ErrUnreservableStock
	}

	backorder, err := o.inventory.Validate(ctx, movement)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			o.logger.Warn("automatic movement validation failed, leaving for manual follow-up",
				zap.String("movement_id", movement.ID.String()),
				zap.String("origin", movement.Origin),
				zap.String("code", domainErr.Code),
				zap.Error(err),
			)
			movement.AddNote("Automatic validation failed: " + domainErr.Message)
			return nil
		}
		return err
	}

	if backorder != nil {
		if !skipBackorderPrompts {
			o.logger.Info("movement left pending partial-fulfillment decision",
				zap.String("movement_id", movement.ID.String()),
				zap.Int("shortfalls", len(backorder.Shortfalls)),
			)
			return nil
		}
		if err := o.inventory.ProcessBackorder(ctx, movement, stock.BackorderNone); err != nil {
			return err
		}
	}

	return nil
}
