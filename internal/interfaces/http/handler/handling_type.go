package handler

import (
	"github.com/gin-gonic/gin"
	wasteapp "github.com/wasteworks/backend/internal/application/waste"
	"github.com/wasteworks/backend/internal/interfaces/http/middleware"
)

// HandlingTypeHandler handles waste handling type API endpoints
type HandlingTypeHandler struct {
	BaseHandler
	handlingTypeService *wasteapp.HandlingTypeService
}

// NewHandlingTypeHandler creates a new HandlingTypeHandler
func NewHandlingTypeHandler(handlingTypeService *wasteapp.HandlingTypeService) *HandlingTypeHandler {
	return &HandlingTypeHandler{
		handlingTypeService: handlingTypeService,
	}
}

// RegisterRoutes registers handling type routes on the given group
func (h *HandlingTypeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	handlingTypes := rg.Group("/waste/handling-types")
	{
		handlingTypes.POST("", h.Create)
		handlingTypes.GET("", h.List)
		handlingTypes.GET("/:id", h.GetByID)
		handlingTypes.PUT("/:id", h.Update)
		handlingTypes.POST("/:id/activate", h.Activate)
		handlingTypes.POST("/:id/deactivate", h.Deactivate)
	}
}

// HandlingTypeRequest represents a request to create or update a handling type
type HandlingTypeRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=20"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Sequence    int    `json:"sequence" binding:"omitempty,min=1"`
}

// ListHandlingTypesQuery represents handling type list query parameters
type ListHandlingTypesQuery struct {
	ActiveOnly bool `form:"active_only"`
}

// Create handles POST /waste/handling-types
func (h *HandlingTypeHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req HandlingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.handlingTypeService.Create(c.Request.Context(), tenantID, wasteapp.HandlingTypeRequest{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Sequence:    req.Sequence,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByID handles GET /waste/handling-types/:id
func (h *HandlingTypeHandler) GetByID(c *gin.Context) {
	tenantID, id, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	resp, err := h.handlingTypeService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /waste/handling-types
func (h *HandlingTypeHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var query ListHandlingTypesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.handlingTypeService.List(c.Request.Context(), tenantID, query.ActiveOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /waste/handling-types/:id
func (h *HandlingTypeHandler) Update(c *gin.Context) {
	tenantID, id, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	var req HandlingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.handlingTypeService.Update(c.Request.Context(), tenantID, id, wasteapp.HandlingTypeRequest{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Sequence:    req.Sequence,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Activate handles POST /waste/handling-types/:id/activate
func (h *HandlingTypeHandler) Activate(c *gin.Context) {
	tenantID, id, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	if err := h.handlingTypeService.Activate(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "active": true})
}

// Deactivate handles POST /waste/handling-types/:id/deactivate
func (h *HandlingTypeHandler) Deactivate(c *gin.Context) {
	tenantID, id, ok := h.bindTenantAndID(c)
	if !ok {
		return
	}

	if err := h.handlingTypeService.Deactivate(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id, "active": false})
}
