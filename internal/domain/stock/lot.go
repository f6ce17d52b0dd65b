package stock

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/shared/valueobject"
)

// ExpiryStatus is the tri-state expiry condition of a hazardous-waste lot
type ExpiryStatus string

const (
	ExpiryStatusOK      ExpiryStatus = "ok"
	ExpiryStatusWarning ExpiryStatus = "warning"
	ExpiryStatusExpired ExpiryStatus = "expired"
)

// expiryMonths is the regulatory treatment window counted from reception.
const expiryMonths = 5

// expiryWarningDays is the remaining-days threshold below which a lot is
// flagged as close to expiry.
const expiryWarningDays = 30

// Lot is a batch identity for a product. For hazardous-waste receptions the
// lot label doubles as the regulatory manifest number, and the lot carries
// the hazard classification propagated from the confirmed reception.
type Lot struct {
	shared.TenantAggregateRoot
	Label          string                     `gorm:"type:varchar(100);not null;uniqueIndex:idx_lot_tenant_product_label,priority:3"`
	ProductID      uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_lot_tenant_product_label,priority:2"`
	Classification valueobject.Classification `gorm:"embedded;embeddedPrefix:cretib_"`
	HandlingTypeID *uuid.UUID                 `gorm:"type:uuid"`
	ReceptionDate  *time.Time
	// ExpiryDate is derived from ReceptionDate and stored for querying.
	ExpiryDate *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (Lot) TableName() string {
	return "stock_lots"
}

// NewLot creates a new lot. The label is trimmed; lots are matched by exact
// (label, product, tenant) tuple and never merged.
func NewLot(tenantID uuid.UUID, label string, productID uuid.UUID) (*Lot, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Lot label cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	return &Lot{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Label:               label,
		ProductID:           productID,
	}, nil
}

// ApplyHazardProfile overwrites the lot's hazard metadata from a confirmed
// reception. Last write wins for the classification flags and reception
// date; the handling type is only replaced when one is given, never cleared
// by omission.
func (l *Lot) ApplyHazardProfile(class valueobject.Classification, handlingTypeID *uuid.UUID, receptionDate time.Time) {
	l.Classification = class
	if handlingTypeID != nil {
		l.HandlingTypeID = handlingTypeID
	}
	day := truncateToDay(receptionDate)
	l.ReceptionDate = &day
	expiry := addMonths(day, expiryMonths)
	l.ExpiryDate = &expiry
	l.UpdatedAt = time.Now()
}

// ClassificationDisplay returns the active CRETIB codes (e.g. "C, T")
func (l *Lot) ClassificationDisplay() string {
	return l.Classification.Display()
}

// DaysRemaining returns the whole days between now and the expiry date.
// Negative once expired; zero when no reception date is recorded.
func (l *Lot) DaysRemaining(now time.Time) int {
	if l.ExpiryDate == nil {
		return 0
	}
	today := truncateToDay(now)
	return int(l.ExpiryDate.Sub(today).Hours() / 24)
}

// ExpiryState returns the tri-state expiry condition relative to now.
// Empty when the lot has no reception date.
func (l *Lot) ExpiryState(now time.Time) ExpiryStatus {
	if l.ExpiryDate == nil {
		return ""
	}
	days := l.DaysRemaining(now)
	switch {
	case days < 0:
		return ExpiryStatusExpired
	case days <= expiryWarningDays:
		return ExpiryStatusWarning
	default:
		return ExpiryStatusOK
	}
}

// truncateToDay normalizes a timestamp to midnight UTC
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonths adds calendar months, clamping to the last day of the target
// month instead of rolling over (Jan 31 + 5 months is Jun 30, not Jul 1).
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}
