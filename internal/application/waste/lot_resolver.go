package waste

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
)

// LotResolution is the outcome of resolving a candidate lot label.
// Found carries the existing lot; otherwise Label holds the normalized
// label a new lot will be materialized under during movement validation.
type LotResolution struct {
	Found bool
	Lot   *stock.Lot
	Label string
}

// LotResolver finds existing lots by exact label match. It never creates
// lots itself; creation happens as part of movement validation, the resolver
// only decides whether to pass an identity or a bare label.
type LotResolver struct {
	lotRepo stock.LotRepository
}

// NewLotResolver creates a new LotResolver
func NewLotResolver(lotRepo stock.LotRepository) *LotResolver {
	return &LotResolver{lotRepo: lotRepo}
}

// Resolve trims the label and looks for an exact (label, product, tenant)
// match. Whitespace variations of the same label resolve identically.
func (r *LotResolver) Resolve(ctx context.Context, tenantID, productID uuid.UUID, label string) (LotResolution, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return LotResolution{}, shared.NewDomainError("INVALID_LABEL", "Lot label cannot be empty")
	}

	lot, err := r.lotRepo.FindByLabel(ctx, tenantID, productID, label)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return LotResolution{Found: false, Label: label}, nil
		}
		return LotResolution{}, err
	}

	return LotResolution{Found: true, Lot: lot, Label: label}, nil
}
