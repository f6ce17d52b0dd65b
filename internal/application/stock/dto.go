package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/stock"
)

// LotResponse is the response representation of a lot with its derived
// expiry fields computed relative to now
type LotResponse struct {
	ID                    uuid.UUID  `json:"id"`
	Label                 string     `json:"label"`
	ProductID             uuid.UUID  `json:"product_id"`
	ClassificationDisplay string     `json:"classification_display"`
	HandlingTypeID        *uuid.UUID `json:"handling_type_id,omitempty"`
	ReceptionDate         *time.Time `json:"reception_date,omitempty"`
	ExpiryDate            *time.Time `json:"expiry_date,omitempty"`
	DaysRemaining         int        `json:"days_remaining"`
	ExpiryStatus          string     `json:"expiry_status,omitempty"`
}

// ToLotResponse converts a domain lot to its response representation
func ToLotResponse(lot *stock.Lot, now time.Time) LotResponse {
	return LotResponse{
		ID:                    lot.ID,
		Label:                 lot.Label,
		ProductID:             lot.ProductID,
		ClassificationDisplay: lot.ClassificationDisplay(),
		HandlingTypeID:        lot.HandlingTypeID,
		ReceptionDate:         lot.ReceptionDate,
		ExpiryDate:            lot.ExpiryDate,
		DaysRemaining:         lot.DaysRemaining(now),
		ExpiryStatus:          string(lot.ExpiryState(now)),
	}
}

// ToLotResponses converts a slice of lots
func ToLotResponses(lots []stock.Lot, now time.Time) []LotResponse {
	responses := make([]LotResponse, 0, len(lots))
	for idx := range lots {
		responses = append(responses, ToLotResponse(&lots[idx], now))
	}
	return responses
}

// LotListFilter filters lot list queries
type LotListFilter struct {
	Page         int        `json:"page"`
	PageSize     int        `json:"page_size"`
	ProductID    *uuid.UUID `json:"product_id"`
	ExpiryStatus *string    `json:"expiry_status"`
	Search       string     `json:"search"`
}
