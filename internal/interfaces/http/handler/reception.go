package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	wasteapp "github.com/wasteworks/backend/internal/application/waste"
	"github.com/wasteworks/backend/internal/interfaces/http/dto"
	"github.com/wasteworks/backend/internal/interfaces/http/middleware"
)

// parseDate parses a date in ISO 8601 date format
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// ReceptionHandler handles hazardous-waste reception API endpoints
type ReceptionHandler struct {
	BaseHandler
	receptionService     *wasteapp.ReceptionService
	defaultSkipBackorder bool
}

// NewReceptionHandler creates a new ReceptionHandler
func NewReceptionHandler(receptionService *wasteapp.ReceptionService) *ReceptionHandler {
	return &ReceptionHandler{
		receptionService: receptionService,
	}
}

// SetDefaultSkipBackorderPrompts sets the confirm behavior used when the
// request body does not say whether to skip backorder prompts
func (h *ReceptionHandler) SetDefaultSkipBackorderPrompts(skip bool) {
	h.defaultSkipBackorder = skip
}

// RegisterRoutes registers reception routes on the given group
func (h *ReceptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receptions := rg.Group("/waste/receptions")
	{
		receptions.POST("", h.Create)
		receptions.GET("", h.List)
		receptions.GET("/:id", h.GetByID)
		receptions.PUT("/:id", h.Update)
		receptions.POST("/:id/confirm", h.Confirm)
		receptions.POST("/:id/cancel", h.Cancel)
		receptions.POST("/:id/reset-to-draft", h.ResetToDraft)
		receptions.POST("/:id/lines", h.AddLine)
		receptions.PUT("/:id/lines/:lineId", h.UpdateLine)
		receptions.DELETE("/:id/lines/:lineId", h.RemoveLine)
	}
	rg.GET("/waste/sale-orders/:id/receptions", h.ListBySaleOrder)
}

// ReceptionLineInput represents one waste item in a reception request
type ReceptionLineInput struct {
	ProductID      *string `json:"product_id" binding:"omitempty,uuid"`
	OriginDesc     string  `json:"origin_desc" binding:"required,min=1,max=200"`
	LotLabel       string  `json:"lot_label" binding:"omitempty,max=100"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Corrosive      bool    `json:"corrosive"`
	Reactive       bool    `json:"reactive"`
	Explosive      bool    `json:"explosive"`
	Toxic          bool    `json:"toxic"`
	Flammable      bool    `json:"flammable"`
	Biological     bool    `json:"biological"`
	HandlingTypeID *string `json:"handling_type_id" binding:"omitempty,uuid"`
}

// CreateReceptionRequest represents a request to create a new reception
type CreateReceptionRequest struct {
	PartnerID     string               `json:"partner_id" binding:"required,uuid"`
	SaleOrderID   *string              `json:"sale_order_id" binding:"omitempty,uuid"`
	ReceptionDate *string              `json:"reception_date" binding:"omitempty,datetime=2006-01-02"`
	Notes         string               `json:"notes" binding:"omitempty,max=2000"`
	Lines         []ReceptionLineInput `json:"lines" binding:"omitempty,dive"`
}

// UpdateReceptionRequest represents a request to update a draft reception
type UpdateReceptionRequest struct {
	ReceptionDate *string `json:"reception_date" binding:"omitempty,datetime=2006-01-02"`
	Notes         *string `json:"notes" binding:"omitempty,max=2000"`
}

// ConfirmReceptionRequest represents a request to confirm a reception
type ConfirmReceptionRequest struct {
	SkipBackorderPrompts bool `json:"skip_backorder_prompts"`
}

// ListReceptionsQuery represents reception list query parameters
type ListReceptionsQuery struct {
	dto.ListRequest
	Status      *string `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
	PartnerID   *string `form:"partner_id" binding:"omitempty,uuid"`
	SaleOrderID *string `form:"sale_order_id" binding:"omitempty,uuid"`
}

// Create handles POST /waste/receptions
func (h *ReceptionHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req CreateReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq, err := toCreateReceptionRequest(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.receptionService.Create(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /waste/receptions/:id
func (h *ReceptionHandler) GetByID(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.receptionService.GetByID(c.Request.Context(), tenantID, receptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /waste/receptions
func (h *ReceptionHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query ListReceptionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	query.ApplyDefaults()

	filter := wasteapp.ReceptionListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Status:   query.Status,
		Search:   query.Search,
	}
	if query.PartnerID != nil {
		partnerID, err := uuid.Parse(*query.PartnerID)
		if err != nil {
			h.BadRequest(c, "Invalid partner ID format")
			return
		}
		filter.PartnerID = &partnerID
	}
	if query.SaleOrderID != nil {
		saleOrderID, err := uuid.Parse(*query.SaleOrderID)
		if err != nil {
			h.BadRequest(c, "Invalid sale order ID format")
			return
		}
		filter.SaleOrderID = &saleOrderID
	}

	result, err := h.receptionService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListBySaleOrder handles GET /waste/sale-orders/:id/receptions
func (h *ReceptionHandler) ListBySaleOrder(c *gin.Context) {
	tenantID, saleOrderID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.receptionService.ListBySaleOrder(c.Request.Context(), tenantID, saleOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /waste/receptions/:id
func (h *ReceptionHandler) Update(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	var req UpdateReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := wasteapp.UpdateReceptionRequest{Notes: req.Notes}
	if req.ReceptionDate != nil {
		date, err := parseDate(*req.ReceptionDate)
		if err != nil {
			h.BadRequest(c, "Invalid reception date format")
			return
		}
		appReq.ReceptionDate = &date
	}

	resp, err := h.receptionService.Update(c.Request.Context(), tenantID, receptionID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Confirm handles POST /waste/receptions/:id/confirm
func (h *ReceptionHandler) Confirm(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	// The body is optional; an absent body keeps the configured default
	req := ConfirmReceptionRequest{SkipBackorderPrompts: h.defaultSkipBackorder}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	resp, err := h.receptionService.Confirm(c.Request.Context(), tenantID, receptionID, wasteapp.ConfirmReceptionRequest{
		SkipBackorderPrompts: req.SkipBackorderPrompts,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /waste/receptions/:id/cancel
func (h *ReceptionHandler) Cancel(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.receptionService.Cancel(c.Request.Context(), tenantID, receptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ResetToDraft handles POST /waste/receptions/:id/reset-to-draft
func (h *ReceptionHandler) ResetToDraft(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.receptionService.ResetToDraft(c.Request.Context(), tenantID, receptionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddLine handles POST /waste/receptions/:id/lines
func (h *ReceptionHandler) AddLine(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	var req ReceptionLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lineReq, err := toReceptionLineRequest(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.receptionService.AddLine(c.Request.Context(), tenantID, receptionID, lineReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateLine handles PUT /waste/receptions/:id/lines/:lineId
func (h *ReceptionHandler) UpdateLine(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req ReceptionLineInput
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	lineReq, err := toReceptionLineRequest(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.receptionService.UpdateLine(c.Request.Context(), tenantID, receptionID, lineID, lineReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveLine handles DELETE /waste/receptions/:id/lines/:lineId
func (h *ReceptionHandler) RemoveLine(c *gin.Context) {
	tenantID, receptionID, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	resp, err := h.receptionService.RemoveLine(c.Request.Context(), tenantID, receptionID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// toCreateReceptionRequest converts the HTTP request to the application DTO
func toCreateReceptionRequest(req CreateReceptionRequest) (wasteapp.CreateReceptionRequest, error) {
	partnerID, err := uuid.Parse(req.PartnerID)
	if err != nil {
		return wasteapp.CreateReceptionRequest{}, err
	}

	appReq := wasteapp.CreateReceptionRequest{
		PartnerID: partnerID,
		Notes:     req.Notes,
	}

	if req.SaleOrderID != nil {
		saleOrderID, err := uuid.Parse(*req.SaleOrderID)
		if err != nil {
			return wasteapp.CreateReceptionRequest{}, err
		}
		appReq.SaleOrderID = &saleOrderID
	}
	if req.ReceptionDate != nil {
		date, err := parseDate(*req.ReceptionDate)
		if err != nil {
			return wasteapp.CreateReceptionRequest{}, err
		}
		appReq.ReceptionDate = &date
	}

	for _, line := range req.Lines {
		lineReq, err := toReceptionLineRequest(line)
		if err != nil {
			return wasteapp.CreateReceptionRequest{}, err
		}
		appReq.Lines = append(appReq.Lines, lineReq)
	}

	return appReq, nil
}

// toReceptionLineRequest converts an HTTP line input to the application DTO
func toReceptionLineRequest(line ReceptionLineInput) (wasteapp.ReceptionLineRequest, error) {
	lineReq := wasteapp.ReceptionLineRequest{
		OriginDesc: line.OriginDesc,
		LotLabel:   line.LotLabel,
		Quantity:   decimal.NewFromFloat(line.Quantity),
		Corrosive:  line.Corrosive,
		Reactive:   line.Reactive,
		Explosive:  line.Explosive,
		Toxic:      line.Toxic,
		Flammable:  line.Flammable,
		Biological: line.Biological,
	}

	if line.ProductID != nil {
		productID, err := uuid.Parse(*line.ProductID)
		if err != nil {
			return wasteapp.ReceptionLineRequest{}, err
		}
		lineReq.ProductID = &productID
	}
	if line.HandlingTypeID != nil {
		handlingTypeID, err := uuid.Parse(*line.HandlingTypeID)
		if err != nil {
			return wasteapp.ReceptionLineRequest{}, err
		}
		lineReq.HandlingTypeID = &handlingTypeID
	}

	return lineReq, nil
}
