package stock

import (
	"context"
	"time"

	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// expiryLeadDays is how far ahead of the expiry date the sweep schedules
// its reminder.
const expiryLeadDays = 30

// LotExpiryService runs the periodic sweep that schedules reminder
// activities for hazardous-waste lots approaching their treatment deadline.
type LotExpiryService struct {
	lotRepo      stock.LotRepository
	reminderRepo stock.ReminderRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewLotExpiryService creates a new LotExpiryService
func NewLotExpiryService(
	lotRepo stock.LotRepository,
	reminderRepo stock.ReminderRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *LotExpiryService {
	return &LotExpiryService{
		lotRepo:      lotRepo,
		reminderRepo: reminderRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// SweepResult summarizes one sweep run
type SweepResult struct {
	LotsChecked      int
	RemindersCreated int
}

// Sweep finds lots expiring exactly 30 days from now and schedules a
// reminder for each, unless an open reminder already references the lot.
// The run is idempotent: repeating it on the same day creates nothing new.
func (s *LotExpiryService) Sweep(ctx context.Context, now time.Time) (*SweepResult, error) {
	targetDay := now.AddDate(0, 0, expiryLeadDays)
	lots, err := s.lotRepo.FindExpiringOn(ctx, targetDay)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{LotsChecked: len(lots)}
	for idx := range lots {
		lot := &lots[idx]

		exists, err := s.reminderRepo.ExistsOpenForLot(ctx, lot.ID, stock.ExpiryReminderSubjectPrefix)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		productName := s.productName(ctx, lot)
		reminder, err := stock.NewExpiryReminder(lot, productName)
		if err != nil {
			s.logger.Warn("skipping reminder for lot without expiry date",
				zap.String("lot", lot.Label),
				zap.Error(err),
			)
			continue
		}
		if err := s.reminderRepo.Save(ctx, reminder); err != nil {
			return nil, err
		}

		result.RemindersCreated++
		s.logger.Info("expiry reminder scheduled",
			zap.String("lot", lot.Label),
			zap.String("product", productName),
			zap.Time("due_date", reminder.DueDate),
		)
	}

	s.logger.Info("lot expiry sweep completed",
		zap.Int("lots_checked", result.LotsChecked),
		zap.Int("reminders_created", result.RemindersCreated),
	)
	return result, nil
}

func (s *LotExpiryService) productName(ctx context.Context, lot *stock.Lot) string {
	product, err := s.productRepo.FindByIDForTenant(ctx, lot.TenantID, lot.ProductID)
	if err != nil {
		s.logger.Warn("could not resolve product for lot reminder",
			zap.String("lot", lot.Label),
			zap.Error(err),
		)
		return lot.ProductID.String()
	}
	return product.DisplayName()
}
