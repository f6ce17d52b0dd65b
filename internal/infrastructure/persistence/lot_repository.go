package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormLotRepository implements LotRepository using GORM
type GormLotRepository struct {
	db *gorm.DB
}

// NewGormLotRepository creates a new GormLotRepository
func NewGormLotRepository(db *gorm.DB) *GormLotRepository {
	return &GormLotRepository{db: db}
}

// FindByLabel finds a lot by exact (label, product, tenant) match
func (r *GormLotRepository) FindByLabel(ctx context.Context, tenantID, productID uuid.UUID, label string) (*stock.Lot, error) {
	var lot stock.Lot
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND label = ?", tenantID, productID, label).
		First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindByIDForTenant finds a lot by ID within a tenant
func (r *GormLotRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*stock.Lot, error) {
	var lot stock.Lot
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindExpiringOn finds all lots whose expiry date falls on the given day.
// The sweep runs across tenants so no tenant filter applies here.
func (r *GormLotRepository) FindExpiringOn(ctx context.Context, day time.Time) ([]stock.Lot, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var lots []stock.Lot
	if err := r.db.WithContext(ctx).
		Where("expiry_date >= ? AND expiry_date < ?", dayStart, dayEnd).
		Order("tenant_id, label").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// FindAllForTenant returns lots for a tenant with pagination
func (r *GormLotRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[stock.Lot], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&stock.Lot{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var lots []stock.Lot
	findQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&stock.Lot{}).Where("tenant_id = ?", tenantID), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		findQuery = findQuery.Offset(offset).Limit(filter.PageSize)
	}
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		findQuery = findQuery.Order(filter.OrderBy + " " + orderDir)
	} else {
		findQuery = findQuery.Order("expiry_date ASC NULLS LAST, label ASC")
	}
	if err := findQuery.Find(&lots).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(lots, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates or updates a lot. A unique index on (tenant, product, label)
// backs lot identity, so a concurrent insert surfaces as ErrAlreadyExists.
func (r *GormLotRepository) Save(ctx context.Context, lot *stock.Lot) error {
	err := r.db.WithContext(ctx).Save(lot).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormLotRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("label ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "handling_type_id":
			query = query.Where("handling_type_id = ?", value)
		case "expires_before":
			query = query.Where("expiry_date < ?", value)
		}
	}

	return query
}

// Ensure GormLotRepository implements LotRepository
var _ stock.LotRepository = (*GormLotRepository)(nil)
