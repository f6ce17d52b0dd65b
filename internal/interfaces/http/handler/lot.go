package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stockapp "github.com/wasteworks/backend/internal/application/stock"
	"github.com/wasteworks/backend/internal/interfaces/http/dto"
	"github.com/wasteworks/backend/internal/interfaces/http/middleware"
)

// LotHandler handles stock lot API endpoints
type LotHandler struct {
	BaseHandler
	lotService    *stockapp.LotService
	expiryService *stockapp.LotExpiryService
}

// NewLotHandler creates a new LotHandler
func NewLotHandler(lotService *stockapp.LotService, expiryService *stockapp.LotExpiryService) *LotHandler {
	return &LotHandler{
		lotService:    lotService,
		expiryService: expiryService,
	}
}

// RegisterRoutes registers lot routes on the given group
func (h *LotHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lots := rg.Group("/stock/lots")
	{
		lots.GET("", h.List)
		lots.GET("/:id", h.GetByID)
		lots.POST("/expiry-sweep", h.RunExpirySweep)
	}
}

// ListLotsQuery represents lot list query parameters
type ListLotsQuery struct {
	dto.ListRequest
	ProductID    *string `form:"product_id" binding:"omitempty,uuid"`
	ExpiryStatus *string `form:"expiry_status" binding:"omitempty,oneof=ok warning expired"`
}

// GetByID handles GET /stock/lots/:id
func (h *LotHandler) GetByID(c *gin.Context) {
	tenantID, lotID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.lotService.GetByID(c.Request.Context(), tenantID, lotID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /stock/lots
func (h *LotHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query ListLotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	query.ApplyDefaults()

	filter := stockapp.LotListFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		ExpiryStatus: query.ExpiryStatus,
		Search:       query.Search,
	}
	if query.ProductID != nil {
		productID, err := uuid.Parse(*query.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format")
			return
		}
		filter.ProductID = &productID
	}

	result, err := h.lotService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// RunExpirySweep handles POST /stock/lots/expiry-sweep.
// The sweep normally runs on the scheduler; this endpoint triggers it on demand.
func (h *LotHandler) RunExpirySweep(c *gin.Context) {
	if _, err := getTenantID(c); err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	result, err := h.expiryService.Sweep(c.Request.Context(), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
