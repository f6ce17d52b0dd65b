package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// ExpiryReminderSubjectPrefix is the subject marker the sweep uses as its
// idempotency key: a lot with an open reminder whose subject contains this
// prefix is not scheduled again.
const ExpiryReminderSubjectPrefix = "Hazardous waste expiry"

// Reminder is a scheduled follow-up activity on a lot, created by the
// expiry sweep 30 days ahead of the treatment deadline.
type Reminder struct {
	shared.BaseEntity
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	LotID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject  string    `gorm:"type:varchar(200);not null"`
	Note     string    `gorm:"type:text"`
	DueDate  time.Time `gorm:"not null"`
	Done     bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Reminder) TableName() string {
	return "lot_reminders"
}

// NewExpiryReminder creates the reminder activity for a lot close to expiry
func NewExpiryReminder(lot *Lot, productName string) (*Reminder, error) {
	if lot.ExpiryDate == nil {
		return nil, shared.NewDomainError("NO_EXPIRY", "Lot has no expiry date to remind about")
	}
	return &Reminder{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   lot.TenantID,
		LotID:      lot.ID,
		Subject:    fmt.Sprintf("%s: %s", ExpiryReminderSubjectPrefix, lot.Label),
		Note: fmt.Sprintf(
			"Lot %s of product %s expires on %s. 30 days remain to arrange treatment.",
			lot.Label, productName, lot.ExpiryDate.Format("02/01/2006"),
		),
		DueDate: *lot.ExpiryDate,
	}, nil
}

// MarkDone resolves the reminder
func (r *Reminder) MarkDone() {
	r.Done = true
	r.UpdatedAt = time.Now()
}
