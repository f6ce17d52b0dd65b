package waste

import (
	"context"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// ReceptionRepository defines the interface for reception persistence
type ReceptionRepository interface {
	// FindByIDForTenant finds a reception with its lines for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Reception, error)

	// FindBySaleOrder finds all receptions created for a sales order
	FindBySaleOrder(ctx context.Context, tenantID, saleOrderID uuid.UUID) ([]Reception, error)

	// FindAllForTenant returns receptions for a tenant with pagination
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[Reception], error)

	// Save creates or updates a reception with its lines
	Save(ctx context.Context, reception *Reception) error

	// SaveWithLock persists the reception using optimistic version locking.
	// Returns shared.ErrConcurrencyConflict when the version moved underneath.
	SaveWithLock(ctx context.Context, reception *Reception) error

	// GenerateReceptionNumber generates the next number in the reception
	// series (REC-YYYY-NNNNN)
	GenerateReceptionNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// HandlingTypeRepository defines the interface for handling type persistence
type HandlingTypeRepository interface {
	// FindByIDForTenant finds a handling type by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*HandlingType, error)

	// FindByCodeForTenant finds a handling type by its unique code
	FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*HandlingType, error)

	// FindAllForTenant returns handling types ordered by sequence
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]HandlingType, error)

	// Save creates or updates a handling type
	Save(ctx context.Context, handlingType *HandlingType) error
}
