package waste

import (
	"context"

	"github.com/wasteworks/backend/internal/domain/stock"
)

// InventoryGateway is the narrow contract the reception workflow consumes
// from the inventory subsystem. Implementations mutate the movement in
// place; persistence happens when the surrounding transaction commits.
type InventoryGateway interface {
	// Confirm commits the movement document out of draft
	Confirm(ctx context.Context, movement *stock.Movement) error

	// Reserve attempts to reserve all demanded quantities
	Reserve(ctx context.Context, movement *stock.Movement) error

	// Validate attempts to complete the movement, materializing any lots
	// attached by name. Returns a BackorderRequest when the movement cannot
	// be fully satisfied and a partial-fulfillment decision is needed.
	Validate(ctx context.Context, movement *stock.Movement) (*stock.BackorderRequest, error)

	// ProcessBackorder executes a partial-fulfillment decision
	ProcessBackorder(ctx context.Context, movement *stock.Movement, policy stock.BackorderPolicy) error

	// CancelMovement cancels a not-yet-done movement
	CancelMovement(ctx context.Context, movement *stock.Movement) error
}
