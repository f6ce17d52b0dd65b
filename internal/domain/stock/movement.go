package stock

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// MovementStatus represents the status of a stock movement document
type MovementStatus string

const (
	MovementStatusDraft     MovementStatus = "DRAFT"
	MovementStatusConfirmed MovementStatus = "CONFIRMED"
	MovementStatusAssigned  MovementStatus = "ASSIGNED"
	MovementStatusDone      MovementStatus = "DONE"
	MovementStatusCancelled MovementStatus = "CANCELLED"
)

// IsValid checks if the status is a valid MovementStatus
func (s MovementStatus) IsValid() bool {
	switch s {
	case MovementStatusDraft, MovementStatusConfirmed, MovementStatusAssigned,
		MovementStatusDone, MovementStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of MovementStatus
func (s MovementStatus) String() string {
	return string(s)
}

// MovementType distinguishes inbound receipts from outbound deliveries
type MovementType string

const (
	MovementTypeInbound  MovementType = "INBOUND"
	MovementTypeOutbound MovementType = "OUTBOUND"
)

// BackorderPolicy decides what happens to unfulfilled quantity on validation
type BackorderPolicy string

const (
	// BackorderNone completes the reserved quantity and closes out the
	// remainder instead of leaving it open.
	BackorderNone BackorderPolicy = "NO_BACKORDER"
	// BackorderCreate splits the remainder into a follow-up document.
	BackorderCreate BackorderPolicy = "CREATE_BACKORDER"
)

// MovementLine is the per-unit detail of a movement item, carrying the lot
// assignment. A lot is attached either by identity (existing lot) or by name
// (lot to be materialized when the movement is validated).
type MovementLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit       string          `gorm:"type:varchar(20);not null"`
	LotID      *uuid.UUID      `gorm:"type:uuid"`
	LotName    string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (MovementLine) TableName() string {
	return "stock_movement_lines"
}

// HasLot reports whether the line carries any lot assignment
func (l *MovementLine) HasLot() bool {
	return l.LotID != nil || l.LotName != ""
}

// MovementItem is the per-product entry of a movement document
type MovementItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MovementID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Description string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reserved    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Lines       []MovementLine  `gorm:"foreignKey:ItemID"`
}

// TableName returns the table name for GORM
func (MovementItem) TableName() string {
	return "stock_movement_items"
}

// FullyReserved reports whether the demanded quantity is fully reserved
func (i *MovementItem) FullyReserved() bool {
	return i.Reserved.GreaterThanOrEqual(i.Quantity)
}

// BackorderRequest is returned by Validate when a movement cannot be fully
// satisfied and a partial-fulfillment decision is required.
type BackorderRequest struct {
	MovementID uuid.UUID
	Shortfalls []BackorderShortfall
}

// BackorderShortfall describes one under-reserved item
type BackorderShortfall struct {
	ItemID    uuid.UUID
	ProductID uuid.UUID
	Demanded  decimal.Decimal
	Reserved  decimal.Decimal
}

// Movement represents a stock movement document (a warehouse "picking").
// For receptions it is always an inbound transfer from a customer-side
// location into warehouse stock.
type Movement struct {
	shared.TenantAggregateRoot
	Type             MovementType   `gorm:"type:varchar(10);not null"`
	Origin           string         `gorm:"type:varchar(50);index"` // originating document reference
	PartnerID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	SourceLocationID uuid.UUID      `gorm:"type:uuid;not null"`
	DestLocationID   uuid.UUID      `gorm:"type:uuid;not null"`
	ScheduledDate    time.Time      `gorm:"not null"`
	Status           MovementStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	InternalNotes    string         `gorm:"type:text"`
	Items            []MovementItem `gorm:"foreignKey:MovementID"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "stock_movements"
}

// NewInboundMovement creates a draft inbound movement document
func NewInboundMovement(tenantID uuid.UUID, origin string, partnerID, sourceLocationID, destLocationID uuid.UUID, scheduledDate time.Time) (*Movement, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner ID cannot be empty")
	}
	if sourceLocationID == uuid.Nil || destLocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Source and destination locations are required")
	}
	if scheduledDate.IsZero() {
		scheduledDate = time.Now()
	}

	return &Movement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                MovementTypeInbound,
		Origin:              origin,
		PartnerID:           partnerID,
		SourceLocationID:    sourceLocationID,
		DestLocationID:      destLocationID,
		ScheduledDate:       scheduledDate,
		Status:              MovementStatusDraft,
		Items:               make([]MovementItem, 0),
	}, nil
}

// AddItem adds a per-product entry plus its detail line to a draft movement.
// lotID and lotName attach the lot by identity or by name respectively;
// passing both prefers the identity.
func (m *Movement) AddItem(productID uuid.UUID, description string, quantity decimal.Decimal, unit string, lotID *uuid.UUID, lotName string) (*MovementItem, error) {
	if m.Status != MovementStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft movement")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	itemID := uuid.New()
	if lotID != nil {
		lotName = ""
	}
	item := MovementItem{
		ID:          itemID,
		MovementID:  m.ID,
		ProductID:   productID,
		Description: description,
		Quantity:    quantity,
		Reserved:    decimal.Zero,
		Unit:        unit,
		Lines: []MovementLine{{
			ID:         uuid.New(),
			ItemID:     itemID,
			MovementID: m.ID,
			ProductID:  productID,
			Quantity:   quantity,
			Unit:       unit,
			LotID:      lotID,
			LotName:    strings.TrimSpace(lotName),
		}},
	}
	m.Items = append(m.Items, item)
	m.UpdatedAt = time.Now()

	return &m.Items[len(m.Items)-1], nil
}

// Confirm commits the movement out of draft
func (m *Movement) Confirm() error {
	if m.Status != MovementStatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm movement in %s status", m.Status))
	}
	if len(m.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm a movement without items")
	}
	m.Status = MovementStatusConfirmed
	m.UpdatedAt = time.Now()
	return nil
}

// ApplyReservation records the reserved quantity per item and moves the
// document to ASSIGNED when every item is fully covered. Items missing from
// the map keep their current reservation.
func (m *Movement) ApplyReservation(reserved map[uuid.UUID]decimal.Decimal) error {
	if m.Status != MovementStatusConfirmed && m.Status != MovementStatusAssigned {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reserve movement in %s status", m.Status))
	}

	allCovered := true
	for idx := range m.Items {
		if qty, ok := reserved[m.Items[idx].ID]; ok {
			if qty.IsNegative() {
				return shared.NewDomainError("INVALID_QUANTITY", "Reserved quantity cannot be negative")
			}
			if qty.GreaterThan(m.Items[idx].Quantity) {
				qty = m.Items[idx].Quantity
			}
			m.Items[idx].Reserved = qty
		}
		if !m.Items[idx].FullyReserved() {
			allCovered = false
		}
	}

	if allCovered {
		m.Status = MovementStatusAssigned
	}
	m.UpdatedAt = time.Now()
	return nil
}

// IsReservable reports whether the document ended up in a state automatic
// validation may proceed from.
func (m *Movement) IsReservable() bool {
	return m.Status == MovementStatusAssigned || m.Status == MovementStatusConfirmed
}

// Validate completes the movement. When every item is fully reserved the
// document goes straight to DONE. Otherwise a BackorderRequest is returned
// and the document stays put until the partial-fulfillment decision is
// processed via ProcessBackorder.
func (m *Movement) Validate() (*BackorderRequest, error) {
	if !m.IsReservable() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot validate movement in %s status", m.Status))
	}

	shortfalls := make([]BackorderShortfall, 0)
	for idx := range m.Items {
		if !m.Items[idx].FullyReserved() {
			shortfalls = append(shortfalls, BackorderShortfall{
				ItemID:    m.Items[idx].ID,
				ProductID: m.Items[idx].ProductID,
				Demanded:  m.Items[idx].Quantity,
				Reserved:  m.Items[idx].Reserved,
			})
		}
	}

	if len(shortfalls) > 0 {
		return &BackorderRequest{MovementID: m.ID, Shortfalls: shortfalls}, nil
	}

	m.Status = MovementStatusDone
	m.UpdatedAt = time.Now()
	return nil, nil
}

// ProcessBackorder executes the partial-fulfillment decision. With
// BackorderNone the reserved quantity is completed and the remainder closed
// out; the document goes to DONE. BackorderCreate is not supported for
// inbound receptions.
func (m *Movement) ProcessBackorder(policy BackorderPolicy) error {
	if !m.IsReservable() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process backorder for movement in %s status", m.Status))
	}
	if policy != BackorderNone {
		return shared.NewDomainError("UNSUPPORTED_POLICY", "Only the no-backorder policy is supported for receptions")
	}

	for idx := range m.Items {
		if !m.Items[idx].FullyReserved() {
			m.Items[idx].Quantity = m.Items[idx].Reserved
			for l := range m.Items[idx].Lines {
				m.Items[idx].Lines[l].Quantity = m.Items[idx].Reserved
			}
		}
	}
	m.Status = MovementStatusDone
	m.UpdatedAt = time.Now()
	return nil
}

// Cancel cancels the movement. A completed movement represents physical
// stock already moved and cannot be cancelled.
func (m *Movement) Cancel() error {
	if m.Status == MovementStatusDone {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel a completed movement")
	}
	if m.Status == MovementStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Movement is already cancelled")
	}
	m.Status = MovementStatusCancelled
	m.UpdatedAt = time.Now()
	return nil
}

// AddNote appends a timestamped note to the document's internal log
func (m *Movement) AddNote(note string) {
	entry := time.Now().Format("2006-01-02 15:04") + " " + note
	if m.InternalNotes == "" {
		m.InternalNotes = entry
	} else {
		m.InternalNotes += "\n" + entry
	}
	m.UpdatedAt = time.Now()
}

// IsDone reports whether the movement reached its terminal completed state
func (m *Movement) IsDone() bool {
	return m.Status == MovementStatusDone
}
