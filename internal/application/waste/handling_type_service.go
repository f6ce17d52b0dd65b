package waste

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/waste"
)

// HandlingTypeService manages the handling type lookup table
type HandlingTypeService struct {
	handlingTypeRepo waste.HandlingTypeRepository
}

// NewHandlingTypeService creates a new HandlingTypeService
func NewHandlingTypeService(handlingTypeRepo waste.HandlingTypeRepository) *HandlingTypeService {
	return &HandlingTypeService{handlingTypeRepo: handlingTypeRepo}
}

// Create creates a new handling type with a unique code per tenant
func (s *HandlingTypeService) Create(ctx context.Context, tenantID uuid.UUID, req HandlingTypeRequest) (*HandlingTypeResponse, error) {
	existing, err := s.handlingTypeRepo.FindByCodeForTenant(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_CODE", "A handling type with this code already exists")
	}

	handlingType, err := waste.NewHandlingType(tenantID, req.Code, req.Name, req.Description, req.Sequence)
	if err != nil {
		return nil, err
	}
	if err := s.handlingTypeRepo.Save(ctx, handlingType); err != nil {
		return nil, err
	}

	response := ToHandlingTypeResponse(handlingType)
	return &response, nil
}

// GetByID retrieves a handling type by ID
func (s *HandlingTypeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*HandlingTypeResponse, error) {
	handlingType, err := s.handlingTypeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToHandlingTypeResponse(handlingType)
	return &response, nil
}

// List retrieves handling types ordered by sequence
func (s *HandlingTypeService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]HandlingTypeResponse, error) {
	types, err := s.handlingTypeRepo.FindAllForTenant(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, err
	}
	return ToHandlingTypeResponses(types), nil
}

// Update updates a handling type's descriptive fields
func (s *HandlingTypeService) Update(ctx context.Context, tenantID, id uuid.UUID, req HandlingTypeRequest) (*HandlingTypeResponse, error) {
	handlingType, err := s.handlingTypeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := handlingType.Update(req.Name, req.Description, req.Sequence); err != nil {
		return nil, err
	}
	if err := s.handlingTypeRepo.Save(ctx, handlingType); err != nil {
		return nil, err
	}

	response := ToHandlingTypeResponse(handlingType)
	return &response, nil
}

// Deactivate hides a handling type from selection
func (s *HandlingTypeService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) error {
	handlingType, err := s.handlingTypeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	handlingType.Deactivate()
	return s.handlingTypeRepo.Save(ctx, handlingType)
}

// Activate makes a handling type selectable again
func (s *HandlingTypeService) Activate(ctx context.Context, tenantID, id uuid.UUID) error {
	handlingType, err := s.handlingTypeRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	handlingType.Activate()
	return s.handlingTypeRepo.Save(ctx, handlingType)
}
