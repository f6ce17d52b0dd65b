package stock

import (
	"github.com/google/uuid"
)

// LocationUsage classifies what a stock location represents
type LocationUsage string

const (
	LocationUsageCustomer LocationUsage = "customer"
	LocationUsageInternal LocationUsage = "internal"
)

// Location is a stock location. Receptions only ever move waste from a
// customer-side location into the warehouse stock location, so this stays a
// thin reference entity.
type Location struct {
	ID    uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Code  string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name  string        `gorm:"type:varchar(100);not null"`
	Usage LocationUsage `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "stock_locations"
}

// Well-known system locations. Seeded by migrations; the reference data
// adapter falls back to these values when no row is configured, so location
// resolution never fails.
var (
	defaultCustomerLocationID  = uuid.MustParse("a1f0b6de-0000-4000-8000-000000000001")
	defaultWarehouseLocationID = uuid.MustParse("a1f0b6de-0000-4000-8000-000000000002")
)

// DefaultCustomerLocation returns the fixed system customer-side location
func DefaultCustomerLocation() Location {
	return Location{
		ID:    defaultCustomerLocationID,
		Code:  "CUSTOMERS",
		Name:  "Customer Locations",
		Usage: LocationUsageCustomer,
	}
}

// DefaultWarehouseLocation returns the fixed system warehouse stock location
func DefaultWarehouseLocation() Location {
	return Location{
		ID:    defaultWarehouseLocationID,
		Code:  "STOCK",
		Name:  "Warehouse Stock",
		Usage: LocationUsageInternal,
	}
}
