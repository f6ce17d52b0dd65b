package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormReminderRepository implements ReminderRepository using GORM
type GormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GormReminderRepository
func NewGormReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

// ExistsOpenForLot reports whether an unresolved reminder with a subject
// containing the given substring already references the lot
func (r *GormReminderRepository) ExistsOpenForLot(ctx context.Context, lotID uuid.UUID, subjectSubstring string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stock.Reminder{}).
		Where("lot_id = ? AND done = ? AND subject LIKE ?", lotID, false, "%"+subjectSubstring+"%").
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a reminder
func (r *GormReminderRepository) Save(ctx context.Context, reminder *stock.Reminder) error {
	return r.db.WithContext(ctx).Save(reminder).Error
}

// Ensure GormReminderRepository implements ReminderRepository
var _ stock.ReminderRepository = (*GormReminderRepository)(nil)
