package waste

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wasteworks/backend/internal/domain/waste"
)

// ReceptionLineRequest carries the operator-supplied values for one waste item
type ReceptionLineRequest struct {
	ProductID      *uuid.UUID      `json:"product_id"`
	OriginDesc     string          `json:"origin_desc"`
	LotLabel       string          `json:"lot_label"`
	Quantity       decimal.Decimal `json:"quantity"`
	Corrosive      bool            `json:"corrosive"`
	Reactive       bool            `json:"reactive"`
	Explosive      bool            `json:"explosive"`
	Toxic          bool            `json:"toxic"`
	Flammable      bool            `json:"flammable"`
	Biological     bool            `json:"biological"`
	HandlingTypeID *uuid.UUID      `json:"handling_type_id"`
}

// CreateReceptionRequest is the request to create a new reception
type CreateReceptionRequest struct {
	PartnerID     uuid.UUID              `json:"partner_id"`
	SaleOrderID   *uuid.UUID             `json:"sale_order_id"`
	ReceptionDate *time.Time             `json:"reception_date"`
	Notes         string                 `json:"notes"`
	Lines         []ReceptionLineRequest `json:"lines"`
}

// UpdateReceptionRequest updates the header fields of a draft reception
type UpdateReceptionRequest struct {
	ReceptionDate *time.Time `json:"reception_date"`
	Notes         *string    `json:"notes"`
}

// ConfirmReceptionRequest controls the confirmation behavior
type ConfirmReceptionRequest struct {
	// SkipBackorderPrompts completes the reserved quantity and closes out
	// any shortfall instead of waiting for a manual decision
	SkipBackorderPrompts bool `json:"skip_backorder_prompts"`
}

// ReceptionLineResponse is the response representation of a waste item
type ReceptionLineResponse struct {
	ID                    uuid.UUID       `json:"id"`
	ProductID             *uuid.UUID      `json:"product_id,omitempty"`
	ProductName           string          `json:"product_name,omitempty"`
	OriginDesc            string          `json:"origin_desc"`
	LotLabel              string          `json:"lot_label,omitempty"`
	Quantity              decimal.Decimal `json:"quantity"`
	Unit                  string          `json:"unit,omitempty"`
	CategoryName          string          `json:"category_name,omitempty"`
	Corrosive             bool            `json:"corrosive"`
	Reactive              bool            `json:"reactive"`
	Explosive             bool            `json:"explosive"`
	Toxic                 bool            `json:"toxic"`
	Flammable             bool            `json:"flammable"`
	Biological            bool            `json:"biological"`
	ClassificationDisplay string          `json:"classification_display"`
	HandlingTypeID        *uuid.UUID      `json:"handling_type_id,omitempty"`
}

// ReceptionResponse is the response representation of a reception
type ReceptionResponse struct {
	ID              uuid.UUID               `json:"id"`
	ReceptionNumber string                  `json:"reception_number"`
	PartnerID       uuid.UUID               `json:"partner_id"`
	SaleOrderID     *uuid.UUID              `json:"sale_order_id,omitempty"`
	MovementID      *uuid.UUID              `json:"movement_id,omitempty"`
	ReceptionDate   time.Time               `json:"reception_date"`
	Status          string                  `json:"status"`
	Notes           string                  `json:"notes,omitempty"`
	Lines           []ReceptionLineResponse `json:"lines"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// ReceptionListFilter filters reception list queries
type ReceptionListFilter struct {
	Page        int        `json:"page"`
	PageSize    int        `json:"page_size"`
	Status      *string    `json:"status"`
	PartnerID   *uuid.UUID `json:"partner_id"`
	SaleOrderID *uuid.UUID `json:"sale_order_id"`
	Search      string     `json:"search"`
}

// ToReceptionLineResponse converts a domain line to its response representation
func ToReceptionLineResponse(line *waste.ReceptionLine) ReceptionLineResponse {
	resp := ReceptionLineResponse{
		ID:                    line.ID,
		ProductName:           line.ProductName,
		OriginDesc:            line.OriginDesc,
		LotLabel:              line.LotLabel,
		Quantity:              line.Quantity,
		Unit:                  line.Unit,
		CategoryName:          line.CategoryName,
		Corrosive:             line.Classification.Corrosive,
		Reactive:              line.Classification.Reactive,
		Explosive:             line.Classification.Explosive,
		Toxic:                 line.Classification.Toxic,
		Flammable:             line.Classification.Flammable,
		Biological:            line.Classification.Biological,
		ClassificationDisplay: line.ClassificationDisplay(),
		HandlingTypeID:        line.HandlingTypeID,
	}
	if line.HasProduct() {
		productID := line.ProductID
		resp.ProductID = &productID
	}
	return resp
}

// ToReceptionResponse converts a domain reception to its response representation
func ToReceptionResponse(reception *waste.Reception) ReceptionResponse {
	lines := make([]ReceptionLineResponse, 0, len(reception.Lines))
	for idx := range reception.Lines {
		lines = append(lines, ToReceptionLineResponse(&reception.Lines[idx]))
	}
	return ReceptionResponse{
		ID:              reception.ID,
		ReceptionNumber: reception.ReceptionNumber,
		PartnerID:       reception.PartnerID,
		SaleOrderID:     reception.SaleOrderID,
		MovementID:      reception.MovementID,
		ReceptionDate:   reception.ReceptionDate,
		Status:          reception.Status.String(),
		Notes:           reception.Notes,
		Lines:           lines,
		CreatedAt:       reception.CreatedAt,
		UpdatedAt:       reception.UpdatedAt,
	}
}

// ToReceptionResponses converts a slice of receptions
func ToReceptionResponses(receptions []waste.Reception) []ReceptionResponse {
	responses := make([]ReceptionResponse, 0, len(receptions))
	for idx := range receptions {
		responses = append(responses, ToReceptionResponse(&receptions[idx]))
	}
	return responses
}

// HandlingTypeRequest creates or updates a handling type
type HandlingTypeRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Sequence    int    `json:"sequence"`
}

// HandlingTypeResponse is the response representation of a handling type
type HandlingTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sequence    int       `json:"sequence"`
	Active      bool      `json:"active"`
}

// ToHandlingTypeResponse converts a domain handling type to its response
func ToHandlingTypeResponse(ht *waste.HandlingType) HandlingTypeResponse {
	return HandlingTypeResponse{
		ID:          ht.ID,
		Code:        ht.Code,
		Name:        ht.Name,
		Description: ht.Description,
		Sequence:    ht.Sequence,
		Active:      ht.Active,
	}
}

// ToHandlingTypeResponses converts a slice of handling types
func ToHandlingTypeResponses(types []waste.HandlingType) []HandlingTypeResponse {
	responses := make([]HandlingTypeResponse, 0, len(types))
	for idx := range types {
		responses = append(responses, ToHandlingTypeResponse(&types[idx]))
	}
	return responses
}
