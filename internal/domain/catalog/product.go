package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
)

// ProductType classifies how a product is handled in inventory
type ProductType string

const (
	ProductTypeStorable   ProductType = "storable"
	ProductTypeConsumable ProductType = "consumable"
	ProductTypeService    ProductType = "service"
)

// IsValid checks if the type is a valid ProductType
func (t ProductType) IsValid() bool {
	switch t {
	case ProductTypeStorable, ProductTypeConsumable, ProductTypeService:
		return true
	}
	return false
}

// TrackingMode determines how stock of a product is identified
type TrackingMode string

const (
	TrackingNone TrackingMode = "none"
	TrackingLot  TrackingMode = "lot"
)

// Product represents a waste product in the catalog.
// Receptions record incoming waste against a product, so the product carries
// the unit of measure and category that reception lines project.
type Product struct {
	shared.TenantAggregateRoot
	Code                string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_product_tenant_code,priority:2"`
	Name                string       `gorm:"type:varchar(200);not null"`
	Type                ProductType  `gorm:"type:varchar(20);not null;default:'storable'"`
	Tracking            TrackingMode `gorm:"type:varchar(10);not null;default:'none'"`
	Unit                string       `gorm:"type:varchar(20);not null"`
	CategoryName        string       `gorm:"type:varchar(100)"`
	IsCollectionService bool         `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, code, name, unit string, productType ProductType) (*Product, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Product unit cannot be empty")
	}
	if !productType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown product type")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Type:                productType,
		Tracking:            TrackingNone,
		Unit:                unit,
	}, nil
}

// DisplayName returns the name shown on movement entries and error messages
func (p *Product) DisplayName() string {
	if p.Code != "" {
		return "[" + p.Code + "] " + p.Name
	}
	return p.Name
}

// TracksByLot reports whether stock of this product is identified by lot
func (p *Product) TracksByLot() bool {
	return p.Tracking == TrackingLot
}

// EnableLotTracking switches the product to lot tracking.
// The inventory subsystem rejects lot names on non-lot-tracked products,
// so receptions that assign a lot label require this mode.
func (p *Product) EnableLotTracking() {
	p.Tracking = TrackingLot
}
