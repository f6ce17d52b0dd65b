package waste

import (
	"context"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/partner"
	"github.com/wasteworks/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// ReferenceData resolves the fixed reference locations a reception movement
// needs. Resolution never fails: a missing configuration falls back to the
// system defaults so intake is never blocked by master data.
type ReferenceData interface {
	// CustomerLocation returns the generator's outbound location, or the
	// system customer location when the partner has none configured
	CustomerLocation(ctx context.Context, tenantID, partnerID uuid.UUID) uuid.UUID

	// WarehouseLocation returns the warehouse stock location
	WarehouseLocation() uuid.UUID
}

// PartnerReferenceData resolves locations from partner master data
type PartnerReferenceData struct {
	partnerRepo partner.PartnerRepository
	logger      *zap.Logger

	customerLocationID  uuid.UUID
	warehouseLocationID uuid.UUID
}

// NewPartnerReferenceData creates a new PartnerReferenceData
func NewPartnerReferenceData(partnerRepo partner.PartnerRepository, logger *zap.Logger) *PartnerReferenceData {
	return &PartnerReferenceData{
		partnerRepo:         partnerRepo,
		logger:              logger,
		customerLocationID:  stock.DefaultCustomerLocation().ID,
		warehouseLocationID: stock.DefaultWarehouseLocation().ID,
	}
}

// ResolveSystemLocations loads the seeded system locations so an existing
// deployment whose rows carry different IDs keeps working. Lookup failures
// keep the compiled-in defaults.
func (r *PartnerReferenceData) ResolveSystemLocations(ctx context.Context, locationRepo stock.LocationRepository) {
	if loc, err := locationRepo.FindByCode(ctx, stock.DefaultCustomerLocation().Code); err == nil {
		r.customerLocationID = loc.ID
	} else {
		r.logger.Warn("customer location row not found, using compiled default", zap.Error(err))
	}
	if loc, err := locationRepo.FindByCode(ctx, stock.DefaultWarehouseLocation().Code); err == nil {
		r.warehouseLocationID = loc.ID
	} else {
		r.logger.Warn("warehouse location row not found, using compiled default", zap.Error(err))
	}
}

// CustomerLocation returns the partner's configured location, falling back
// to the system customer location on any miss or lookup failure
func (r *PartnerReferenceData) CustomerLocation(ctx context.Context, tenantID, partnerID uuid.UUID) uuid.UUID {
	p, err := r.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID)
	if err != nil {
		r.logger.Warn("partner lookup failed, using default customer location",
			zap.String("partner_id", partnerID.String()),
			zap.Error(err),
		)
		return r.customerLocationID
	}
	if p.CustomerLocationID != nil {
		return *p.CustomerLocationID
	}
	return r.customerLocationID
}

// WarehouseLocation returns the system warehouse stock location
func (r *PartnerReferenceData) WarehouseLocation() uuid.UUID {
	return r.warehouseLocationID
}

// Ensure PartnerReferenceData implements ReferenceData
var _ ReferenceData = (*PartnerReferenceData)(nil)
