package waste

import (
	"context"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/stock"
	"github.com/wasteworks/backend/internal/domain/waste"
	"go.uber.org/zap"
)

// MovementBuilder translates reception lines into a draft inbound movement
// document with one item and one detail line per reception line.
type MovementBuilder struct {
	refData     ReferenceData
	lotResolver *LotResolver
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewMovementBuilder creates a new MovementBuilder
func NewMovementBuilder(
	refData ReferenceData,
	lotResolver *LotResolver,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *MovementBuilder {
	return &MovementBuilder{
		refData:     refData,
		lotResolver: lotResolver,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Build creates the draft movement for a reception. The reception's lines
// must already have passed pre-flight validation; malformed lines are a
// caller bug, not a condition handled here.
func (b *MovementBuilder) Build(ctx context.Context, reception *waste.Reception) (*stock.Movement, error) {
	source := b.refData.CustomerLocation(ctx, reception.TenantID, reception.PartnerID)
	dest := b.refData.WarehouseLocation()

	movement, err := stock.NewInboundMovement(
		reception.TenantID,
		reception.ReceptionNumber,
		reception.PartnerID,
		source,
		dest,
		reception.ReceptionDate,
	)
	if err != nil {
		return nil, err
	}

	for idx := range reception.Lines {
		line := &reception.Lines[idx]

		var lotID *uuid.UUID
		var lotName string
		if line.HasLotLabel() {
			resolution, err := b.lotResolver.Resolve(ctx, reception.TenantID, line.ProductID, line.LotLabel)
			if err != nil {
				return nil, err
			}
			if resolution.Found {
				lotID = &resolution.Lot.ID
			} else {
				lotName = resolution.Label
			}

			b.ensureLotTracking(ctx, reception.TenantID, line.ProductID)
		}

		description := line.ProductName
		if description == "" {
			description = line.OriginDesc
		}
		if _, err := movement.AddItem(line.ProductID, description, line.Quantity, line.Unit, lotID, lotName); err != nil {
			return nil, err
		}
	}

	return movement, nil
}

// ensureLotTracking switches the product to lot tracking when a lot label is
// assigned, since movement validation rejects lot names on non-lot-tracked
// products. Best effort: a failure here is logged and never aborts the build.
func (b *MovementBuilder) ensureLotTracking(ctx context.Context, tenantID, productID uuid.UUID) {
	product, err := b.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		b.logger.Warn("could not load product to enable lot tracking",
			zap.String("product_id", productID.String()),
			zap.Error(err),
		)
		return
	}
	if product.TracksByLot() {
		return
	}

	product.EnableLotTracking()
	if err := b.productRepo.UpdateTracking(ctx, tenantID, product.ID, product.Tracking); err != nil {
		b.logger.Warn("could not switch product to lot tracking",
			zap.String("product_id", productID.String()),
			zap.String("product", product.DisplayName()),
			zap.Error(err),
		)
	}
}
