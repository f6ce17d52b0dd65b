package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
)

// LotService is the read surface over hazardous-waste lots
type LotService struct {
	lotRepo stock.LotRepository
}

// NewLotService creates a new LotService
func NewLotService(lotRepo stock.LotRepository) *LotService {
	return &LotService{lotRepo: lotRepo}
}

// GetByID retrieves a lot with its derived expiry fields
func (s *LotService) GetByID(ctx context.Context, tenantID, lotID uuid.UUID) (*LotResponse, error) {
	lot, err := s.lotRepo.FindByIDForTenant(ctx, tenantID, lotID)
	if err != nil {
		return nil, err
	}
	response := ToLotResponse(lot, time.Now())
	return &response, nil
}

// List retrieves lots with filtering and pagination. The expiry status
// filter is applied after the page is loaded since the status is derived
// relative to now, not stored.
func (s *LotService) List(ctx context.Context, tenantID uuid.UUID, filter LotListFilter) (*shared.Paginated[LotResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}

	page, err := s.lotRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := ToLotResponses(page.Items, now)
	if filter.ExpiryStatus != nil {
		filtered := make([]LotResponse, 0, len(items))
		for _, item := range items {
			if item.ExpiryStatus == *filter.ExpiryStatus {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	result := shared.Paginated[LotResponse]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	return &result, nil
}
