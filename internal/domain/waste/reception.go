package waste

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/shared/valueobject"
)

// ReceptionStatus represents the status of a waste reception
type ReceptionStatus string

const (
	ReceptionStatusDraft     ReceptionStatus = "DRAFT"
	ReceptionStatusConfirmed ReceptionStatus = "CONFIRMED"
	ReceptionStatusCancelled ReceptionStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ReceptionStatus
func (s ReceptionStatus) IsValid() bool {
	switch s {
	case ReceptionStatusDraft, ReceptionStatusConfirmed, ReceptionStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReceptionStatus
func (s ReceptionStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s ReceptionStatus) CanTransitionTo(target ReceptionStatus) bool {
	switch s {
	case ReceptionStatusDraft:
		return target == ReceptionStatusConfirmed || target == ReceptionStatusCancelled
	case ReceptionStatusConfirmed:
		return target == ReceptionStatusCancelled
	case ReceptionStatusCancelled:
		return target == ReceptionStatusDraft
	}
	return false
}

// ReceptionLine is one waste item within a reception. The origin description
// is carried from the external manifest; the product is the internal article
// the waste is recorded as, resolved by the operator. Unit, product name and
// category are projections of the resolved product, denormalized at resolve
// time so confirmed receptions keep what was shown to the operator.
type ReceptionLine struct {
	ID             uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	ReceptionID    uuid.UUID                  `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID                  `gorm:"type:uuid"`
	ProductName    string                     `gorm:"type:varchar(200)"`
	OriginDesc     string                     `gorm:"type:varchar(200);not null"`
	LotLabel       string                     `gorm:"type:varchar(100)"`
	Quantity       decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Unit           string                     `gorm:"type:varchar(20)"`
	CategoryName   string                     `gorm:"type:varchar(100)"`
	Classification valueobject.Classification `gorm:"embedded;embeddedPrefix:cretib_"`
	HandlingTypeID *uuid.UUID                 `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ReceptionLine) TableName() string {
	return "waste_reception_lines"
}

// HasProduct reports whether the operator has resolved a target product
func (l *ReceptionLine) HasProduct() bool {
	return l.ProductID != uuid.Nil
}

// HasLotLabel reports whether the line carries a manifest/lot label
func (l *ReceptionLine) HasLotLabel() bool {
	return strings.TrimSpace(l.LotLabel) != ""
}

// ClassificationDisplay returns the active CRETIB codes (e.g. "C, T")
func (l *ReceptionLine) ClassificationDisplay() string {
	return l.Classification.Display()
}

// Reception records one hazardous-waste intake event, usually originating
// from a confirmed sales order.
type Reception struct {
	shared.TenantAggregateRoot
	ReceptionNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_reception_tenant_number,priority:2"`
	SaleOrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	PartnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementID      *uuid.UUID      `gorm:"type:uuid"`
	ReceptionDate   time.Time       `gorm:"not null"`
	Notes           string          `gorm:"type:text"`
	Status          ReceptionStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Lines           []ReceptionLine `gorm:"foreignKey:ReceptionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Reception) TableName() string {
	return "waste_receptions"
}

// NewReception creates a new draft reception. The reception number comes
// from the numbering series and never changes afterwards.
func NewReception(tenantID uuid.UUID, receptionNumber string, partnerID uuid.UUID, saleOrderID *uuid.UUID, receptionDate time.Time) (*Reception, error) {
	if receptionNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Reception number cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Generator partner is required")
	}
	if receptionDate.IsZero() {
		receptionDate = time.Now()
	}

	reception := &Reception{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ReceptionNumber:     receptionNumber,
		SaleOrderID:         saleOrderID,
		PartnerID:           partnerID,
		ReceptionDate:       receptionDate,
		Status:              ReceptionStatusDraft,
		Lines:               make([]ReceptionLine, 0),
	}

	reception.AddDomainEvent(NewReceptionCreatedEvent(reception))
	return reception, nil
}

// LineInput carries the operator-supplied values for one waste item
type LineInput struct {
	ProductID      uuid.UUID
	ProductName    string
	OriginDesc     string
	LotLabel       string
	Quantity       decimal.Decimal
	Unit           string
	CategoryName   string
	Classification valueobject.Classification
	HandlingTypeID *uuid.UUID
}

// AddLine adds a waste item to a draft reception. The product may still be
// unresolved at this point; it becomes mandatory at confirmation. The
// quantity is checked on every write, never only at confirmation.
func (r *Reception) AddLine(input LineInput) (*ReceptionLine, error) {
	if r.Status != ReceptionStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Can only add waste items to a draft reception")
	}
	if strings.TrimSpace(input.OriginDesc) == "" {
		return nil, shared.NewDomainError("INVALID_LINE", "Waste item needs an origin description")
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be strictly positive")
	}

	line := ReceptionLine{
		ID:             uuid.New(),
		ReceptionID:    r.ID,
		ProductID:      input.ProductID,
		ProductName:    input.ProductName,
		OriginDesc:     strings.TrimSpace(input.OriginDesc),
		LotLabel:       strings.TrimSpace(input.LotLabel),
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		CategoryName:   input.CategoryName,
		Classification: input.Classification,
		HandlingTypeID: input.HandlingTypeID,
	}
	r.Lines = append(r.Lines, line)
	r.UpdatedAt = time.Now()

	return &r.Lines[len(r.Lines)-1], nil
}

// UpdateLine replaces the mutable values of an existing line on a draft
// reception. The origin description is read-only once set.
func (r *Reception) UpdateLine(lineID uuid.UUID, input LineInput) error {
	if r.Status != ReceptionStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Can only edit waste items on a draft reception")
	}
	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be strictly positive")
	}

	for idx := range r.Lines {
		if r.Lines[idx].ID == lineID {
			r.Lines[idx].ProductID = input.ProductID
			r.Lines[idx].ProductName = input.ProductName
			r.Lines[idx].LotLabel = strings.TrimSpace(input.LotLabel)
			r.Lines[idx].Quantity = input.Quantity
			r.Lines[idx].Unit = input.Unit
			r.Lines[idx].CategoryName = input.CategoryName
			r.Lines[idx].Classification = input.Classification
			r.Lines[idx].HandlingTypeID = input.HandlingTypeID
			r.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Waste item not found on this reception")
}

// RemoveLine deletes a line from a draft reception
func (r *Reception) RemoveLine(lineID uuid.UUID) error {
	if r.Status != ReceptionStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Can only remove waste items from a draft reception")
	}
	for idx := range r.Lines {
		if r.Lines[idx].ID == lineID {
			r.Lines = append(r.Lines[:idx], r.Lines[idx+1:]...)
			r.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Waste item not found on this reception")
}

// ValidateForConfirm runs the pre-flight checks of the confirm transition
// without changing state. The inventory movement is only built once these
// pass, so a bad line never leaves a half-created movement behind.
func (r *Reception) ValidateForConfirm() error {
	if r.Status != ReceptionStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Reception is already confirmed")
	}
	if len(r.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "You must add at least one waste item before confirming")
	}
	for idx := range r.Lines {
		if !r.Lines[idx].HasProduct() {
			return shared.NewDomainError("LINE_MISSING_PRODUCT",
				fmt.Sprintf("Waste item %q has no target product assigned", r.Lines[idx].OriginDesc))
		}
		if r.Lines[idx].Quantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_QUANTITY",
				fmt.Sprintf("Quantity for product %q must be strictly positive", r.Lines[idx].ProductName))
		}
	}
	return nil
}

// Confirm transitions the reception to confirmed, recording the inventory
// movement created for it. A confirmed reception always links a movement.
func (r *Reception) Confirm(movementID uuid.UUID) error {
	if err := r.ValidateForConfirm(); err != nil {
		return err
	}
	if movementID == uuid.Nil {
		return shared.NewDomainError("INVALID_MOVEMENT", "Confirmed reception requires an inventory movement")
	}

	r.MovementID = &movementID
	r.Status = ReceptionStatusConfirmed
	r.UpdatedAt = time.Now()

	r.AddDomainEvent(NewReceptionConfirmedEvent(r))
	return nil
}

// Cancel transitions the reception to cancelled. The movement link is kept
// so a later revert or audit can still reach the cancelled movement.
// The caller is responsible for refusing cancellation when the linked
// movement is already done, since that is a cross-aggregate check.
func (r *Reception) Cancel() error {
	if r.Status == ReceptionStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Reception is already cancelled")
	}

	r.Status = ReceptionStatusCancelled
	r.UpdatedAt = time.Now()

	r.AddDomainEvent(NewReceptionCancelledEvent(r))
	return nil
}

// ResetToDraft reopens a cancelled reception for editing. The movement link
// is cleared unconditionally; a fresh movement is built on the next confirm.
func (r *Reception) ResetToDraft() error {
	if r.Status != ReceptionStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Only a cancelled reception can be reset to draft")
	}

	r.MovementID = nil
	r.Status = ReceptionStatusDraft
	r.UpdatedAt = time.Now()
	return nil
}

// AppendNote appends a timestamped entry to the reception's notes
func (r *Reception) AppendNote(note string) {
	entry := time.Now().Format("2006-01-02 15:04") + " " + note
	if r.Notes == "" {
		r.Notes = entry
	} else {
		r.Notes += "\n" + entry
	}
	r.UpdatedAt = time.Now()
}

// IsConfirmed reports whether the reception reached the confirmed state
func (r *Reception) IsConfirmed() bool {
	return r.Status == ReceptionStatusConfirmed
}
