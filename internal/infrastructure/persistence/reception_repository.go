package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/waste"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReceptionRepository implements ReceptionRepository using GORM
type GormReceptionRepository struct {
	db *gorm.DB
}

// NewGormReceptionRepository creates a new GormReceptionRepository
func NewGormReceptionRepository(db *gorm.DB) *GormReceptionRepository {
	return &GormReceptionRepository{db: db}
}

// FindByIDForTenant finds a reception with its lines within a tenant
func (r *GormReceptionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*waste.Reception, error) {
	var reception waste.Reception
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&reception).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &reception, nil
}

// FindBySaleOrder finds all receptions created for a sales order
func (r *GormReceptionRepository) FindBySaleOrder(ctx context.Context, tenantID, saleOrderID uuid.UUID) ([]waste.Reception, error) {
	var receptions []waste.Reception
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND sale_order_id = ?", tenantID, saleOrderID).
		Order("created_at DESC").
		Find(&receptions).Error; err != nil {
		return nil, err
	}
	return receptions, nil
}

// FindAllForTenant returns receptions for a tenant with pagination
func (r *GormReceptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (*shared.Paginated[waste.Reception], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&waste.Reception{}).Where("tenant_id = ?", tenantID), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var receptions []waste.Reception
	findQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&waste.Reception{}).Where("tenant_id = ?", tenantID), filter)
	findQuery = r.applyPagination(findQuery.Preload("Lines"), filter)
	if err := findQuery.Find(&receptions).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(receptions, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Save creates or updates a reception with its lines. Lines removed from the
// aggregate are deleted from the database.
func (r *GormReceptionRepository) Save(ctx context.Context, reception *waste.Reception) error {
	db := r.db.WithContext(ctx)
	if err := r.pruneRemovedLines(db, reception); err != nil {
		return err
	}
	return db.Session(&gorm.Session{FullSaveAssociations: true}).Save(reception).Error
}

// SaveWithLock persists the reception using optimistic version locking.
// Returns shared.ErrConcurrencyConflict when the version moved underneath.
func (r *GormReceptionRepository) SaveWithLock(ctx context.Context, reception *waste.Reception) error {
	db := r.db.WithContext(ctx)
	currentVersion := reception.Version

	updates := map[string]any{
		"reception_number": reception.ReceptionNumber,
		"sale_order_id":    reception.SaleOrderID,
		"partner_id":       reception.PartnerID,
		"movement_id":      reception.MovementID,
		"reception_date":   reception.ReceptionDate,
		"notes":            reception.Notes,
		"status":           reception.Status,
		"updated_at":       time.Now(),
		"version":          currentVersion + 1,
	}

	result := db.Model(&waste.Reception{}).
		Where("id = ? AND tenant_id = ? AND version = ?", reception.ID, reception.TenantID, currentVersion).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	reception.Version = currentVersion + 1

	if err := r.pruneRemovedLines(db, reception); err != nil {
		return err
	}
	if len(reception.Lines) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&reception.Lines).Error
}

// GenerateReceptionNumber generates a unique reception number for a tenant
// Format: REC-YYYY-NNNNN (e.g., REC-2026-00001)
func (r *GormReceptionRepository) GenerateReceptionNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("REC-%d-", year)

	// Get the highest reception number for this year
	var last waste.Reception
	err := r.db.WithContext(ctx).
		Model(&waste.Reception{}).
		Where("tenant_id = ? AND reception_number LIKE ?", tenantID, prefix+"%").
		Order("reception_number DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.ReceptionNumber != "" {
		parts := strings.Split(last.ReceptionNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// pruneRemovedLines deletes persisted lines no longer present on the aggregate
func (r *GormReceptionRepository) pruneRemovedLines(db *gorm.DB, reception *waste.Reception) error {
	if len(reception.Lines) == 0 {
		return db.Where("reception_id = ?", reception.ID).Delete(&waste.ReceptionLine{}).Error
	}
	ids := make([]uuid.UUID, len(reception.Lines))
	for i := range reception.Lines {
		ids[i] = reception.Lines[i].ID
	}
	return db.Where("reception_id = ? AND id NOT IN ?", reception.ID, ids).Delete(&waste.ReceptionLine{}).Error
}

// applyPagination applies pagination and ordering to the query
func (r *GormReceptionRepository) applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("reception_date DESC, reception_number DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReceptionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reception_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "partner_id":
			query = query.Where("partner_id = ?", value)
		case "sale_order_id":
			query = query.Where("sale_order_id = ?", value)
		}
	}

	return query
}

// Ensure GormReceptionRepository implements ReceptionRepository
var _ waste.ReceptionRepository = (*GormReceptionRepository)(nil)
