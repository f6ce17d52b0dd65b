package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// MovementRepository defines the interface for movement document persistence
type MovementRepository interface {
	// FindByIDForTenant finds a movement by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Movement, error)

	// Save creates or updates a movement with its items and lines
	Save(ctx context.Context, movement *Movement) error
}

// LotRepository defines the interface for lot persistence
type LotRepository interface {
	// FindByLabel finds a lot by exact (label, product, tenant) match.
	// Returns shared.ErrNotFound when no such lot exists.
	FindByLabel(ctx context.Context, tenantID, productID uuid.UUID, label string) (*Lot, error)

	// FindByIDForTenant finds a lot by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Lot, error)

	// FindExpiringOn finds all lots (across tenants) whose expiry date falls
	// on the given day. Used by the expiry reminder sweep.
	FindExpiringOn(ctx context.Context, day time.Time) ([]Lot, error)

	// FindAllForTenant returns lots for a tenant with pagination
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[Lot], error)

	// Save creates or updates a lot
	Save(ctx context.Context, lot *Lot) error
}

// ReminderRepository defines the interface for lot reminder persistence
type ReminderRepository interface {
	// ExistsOpenForLot reports whether an unresolved reminder with a subject
	// containing the given substring already references the lot
	ExistsOpenForLot(ctx context.Context, lotID uuid.UUID, subjectSubstring string) (bool, error)

	// Save creates or updates a reminder
	Save(ctx context.Context, reminder *Reminder) error
}

// LocationRepository defines read-only access to stock locations
type LocationRepository interface {
	// FindByCode finds a location by its well-known code
	FindByCode(ctx context.Context, code string) (*Location, error)
}
