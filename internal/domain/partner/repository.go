package partner

import (
	"context"

	"github.com/google/uuid"
)

// PartnerRepository defines the interface for partner persistence
type PartnerRepository interface {
	// FindByIDForTenant finds a partner by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Partner, error)

	// Save creates or updates a partner
	Save(ctx context.Context, p *Partner) error
}
