package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// Partner represents a generator (customer) that ships hazardous waste.
// Read-only reference data for the reception workflow; the only attribute
// the workflow consumes beyond identity is the configured outbound location.
type Partner struct {
	shared.TenantAggregateRoot
	Name string `gorm:"type:varchar(200);not null"`
	// CustomerLocationID is the partner's configured customer-side stock
	// location. Nil means the system default customer location applies.
	CustomerLocationID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a new partner
func NewPartner(tenantID uuid.UUID, name string) (*Partner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	return &Partner{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}
