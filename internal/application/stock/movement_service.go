package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// MovementService implements the inventory side of the reception workflow:
// confirming, reserving and validating movement documents, and
// materializing lots attached by name.
type MovementService struct {
	lotRepo stock.LotRepository
	logger  *zap.Logger
}

// NewMovementService creates a new MovementService
func NewMovementService(lotRepo stock.LotRepository, logger *zap.Logger) *MovementService {
	return &MovementService{
		lotRepo: lotRepo,
		logger:  logger,
	}
}

// Confirm commits the movement document out of draft
func (s *MovementService) Confirm(_ context.Context, movement *stock.Movement) error {
	return movement.Confirm()
}

// Reserve reserves all demanded quantities. Inbound receipts supply their
// own stock, so the full demand is always reservable.
func (s *MovementService) Reserve(_ context.Context, movement *stock.Movement) error {
	if movement.Type != stock.MovementTypeInbound {
		return shared.NewDomainError("UNSUPPORTED_TYPE", "Only inbound movements are supported")
	}

	reserved := make(map[uuid.UUID]decimal.Decimal, len(movement.Items))
	for idx := range movement.Items {
		reserved[movement.Items[idx].ID] = movement.Items[idx].Quantity
	}
	return movement.ApplyReservation(reserved)
}

// Validate materializes lots attached by name and completes the movement.
// A lot conflict (label materialized concurrently into an incompatible
// record) is reported as a domain error so the caller can degrade to
// manual follow-up rather than failing the reception.
func (s *MovementService) Validate(ctx context.Context, movement *stock.Movement) (*stock.BackorderRequest, error) {
	if err := s.materializeLots(ctx, movement); err != nil {
		return nil, err
	}
	return movement.Validate()
}

// ProcessBackorder executes a partial-fulfillment decision
func (s *MovementService) ProcessBackorder(_ context.Context, movement *stock.Movement, policy stock.BackorderPolicy) error {
	return movement.ProcessBackorder(policy)
}

// CancelMovement cancels a not-yet-done movement
func (s *MovementService) CancelMovement(_ context.Context, movement *stock.Movement) error {
	return movement.Cancel()
}

// materializeLots creates lot records for lines that carry a lot by name
// and rewires the line to the lot identity
func (s *MovementService) materializeLots(ctx context.Context, movement *stock.Movement) error {
	for i := range movement.Items {
		item := &movement.Items[i]
		for j := range item.Lines {
			line := &item.Lines[j]
			if line.LotID != nil || line.LotName == "" {
				continue
			}

			lot, err := s.lotRepo.FindByLabel(ctx, movement.TenantID, line.ProductID, line.LotName)
			if err == nil {
				line.LotID = &lot.ID
				line.LotName = ""
				continue
			}
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}

			lot, err = stock.NewLot(movement.TenantID, line.LotName, line.ProductID)
			if err != nil {
				return err
			}
			if err := s.lotRepo.Save(ctx, lot); err != nil {
				if errors.Is(err, shared.ErrAlreadyExists) {
					return shared.NewDomainError("LOT_CONFLICT",
						"Lot "+line.LotName+" was created concurrently")
				}
				return err
			}

			s.logger.Debug("lot materialized during movement validation",
				zap.String("movement_id", movement.ID.String()),
				zap.String("lot", lot.Label),
			)
			line.LotID = &lot.ID
			line.LotName = ""
		}
	}
	return nil
}
