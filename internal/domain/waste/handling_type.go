package waste

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// HandlingType is a lookup describing the disposal or treatment method for
// a waste category. Pure reference data, unique code per tenant, ordered by
// an explicit sequence for display.
type HandlingType struct {
	shared.TenantAggregateRoot
	Code        string `gorm:"type:varchar(20);not null;uniqueIndex:idx_handling_tenant_code,priority:2"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Sequence    int    `gorm:"not null;default:10"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (HandlingType) TableName() string {
	return "waste_handling_types"
}

// NewHandlingType creates a new handling type
func NewHandlingType(tenantID uuid.UUID, code, name, description string, sequence int) (*HandlingType, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Handling type code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Handling type name cannot be empty")
	}
	if sequence <= 0 {
		sequence = 10
	}

	return &HandlingType{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                strings.TrimSpace(name),
		Description:         description,
		Sequence:            sequence,
		Active:              true,
	}, nil
}

// Update changes the descriptive fields. The code is immutable once created.
func (h *HandlingType) Update(name, description string, sequence int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Handling type name cannot be empty")
	}
	h.Name = strings.TrimSpace(name)
	h.Description = description
	if sequence > 0 {
		h.Sequence = sequence
	}
	h.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the handling type from selection without deleting it
func (h *HandlingType) Deactivate() {
	h.Active = false
	h.UpdatedAt = time.Now()
}

// Activate makes the handling type selectable again
func (h *HandlingType) Activate() {
	h.Active = true
	h.UpdatedAt = time.Now()
}
