package persistence

import (
	"context"
	"errors"

	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByCode finds a location by its well-known code
func (r *GormLocationRepository) FindByCode(ctx context.Context, code string) (*stock.Location, error) {
	var location stock.Location
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// Ensure GormLocationRepository implements LocationRepository
var _ stock.LocationRepository = (*GormLocationRepository)(nil)
