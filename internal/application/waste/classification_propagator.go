package waste

import (
	"context"

	"github.com/wasteworks/backend/internal/domain/stock"
	"github.com/wasteworks/backend/internal/domain/waste"
	"go.uber.org/zap"
)

// ClassificationPropagator writes hazard metadata from a confirmed
// reception onto the lots its lines reference.
type ClassificationPropagator struct {
	lotResolver *LotResolver
	lotRepo     stock.LotRepository
	logger      *zap.Logger
}

// NewClassificationPropagator creates a new ClassificationPropagator
func NewClassificationPropagator(lotResolver *LotResolver, lotRepo stock.LotRepository, logger *zap.Logger) *ClassificationPropagator {
	return &ClassificationPropagator{
		lotResolver: lotResolver,
		lotRepo:     lotRepo,
		logger:      logger,
	}
}

// Propagate re-resolves each line's lot label and overwrites the lot's
// classification flags, reception date and handling type. Last write wins.
// A label that resolves to no lot is skipped silently: the lot may not have
// been materialized, or the regulatory identifier does not map to what the
// movement actually created.
func (p *ClassificationPropagator) Propagate(ctx context.Context, reception *waste.Reception) error {
	for idx := range reception.Lines {
		line := &reception.Lines[idx]
		if !line.HasLotLabel() {
			continue
		}

		resolution, err := p.lotResolver.Resolve(ctx, reception.TenantID, line.ProductID, line.LotLabel)
		if err != nil {
			return err
		}
		if !resolution.Found {
			p.logger.Debug("no lot to annotate for label",
				zap.String("reception", reception.ReceptionNumber),
				zap.String("label", line.LotLabel),
			)
			continue
		}

		resolution.Lot.ApplyHazardProfile(line.Classification, line.HandlingTypeID, reception.ReceptionDate)
		if err := p.lotRepo.Save(ctx, resolution.Lot); err != nil {
			return err
		}

		p.logger.Info("hazard classification propagated to lot",
			zap.String("reception", reception.ReceptionNumber),
			zap.String("lot", resolution.Lot.Label),
			zap.String("classification", resolution.Lot.ClassificationDisplay()),
		)
	}
	return nil
}
