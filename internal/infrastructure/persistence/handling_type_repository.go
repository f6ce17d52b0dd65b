package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/waste"
	"gorm.io/gorm"
)

// GormHandlingTypeRepository implements HandlingTypeRepository using GORM
type GormHandlingTypeRepository struct {
	db *gorm.DB
}

// NewGormHandlingTypeRepository creates a new GormHandlingTypeRepository
func NewGormHandlingTypeRepository(db *gorm.DB) *GormHandlingTypeRepository {
	return &GormHandlingTypeRepository{db: db}
}

// FindByIDForTenant finds a handling type by ID within a tenant
func (r *GormHandlingTypeRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*waste.HandlingType, error) {
	var handlingType waste.HandlingType
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&handlingType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &handlingType, nil
}

// FindByCodeForTenant finds a handling type by its unique code
func (r *GormHandlingTypeRepository) FindByCodeForTenant(ctx context.Context, tenantID uuid.UUID, code string) (*waste.HandlingType, error) {
	var handlingType waste.HandlingType
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&handlingType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &handlingType, nil
}

// FindAllForTenant returns handling types ordered by sequence
func (r *GormHandlingTypeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]waste.HandlingType, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var handlingTypes []waste.HandlingType
	if err := query.Order("sequence ASC, code ASC").Find(&handlingTypes).Error; err != nil {
		return nil, err
	}
	return handlingTypes, nil
}

// Save creates or updates a handling type
func (r *GormHandlingTypeRepository) Save(ctx context.Context, handlingType *waste.HandlingType) error {
	err := r.db.WithContext(ctx).Save(handlingType).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Ensure GormHandlingTypeRepository implements HandlingTypeRepository
var _ waste.HandlingTypeRepository = (*GormHandlingTypeRepository)(nil)
