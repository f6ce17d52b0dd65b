package waste

import (
	"context"
	"time"

	"github.com/google/uuid"
	stockapp "github.com/wasteworks/backend/internal/application/stock"
	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/shared/valueobject"
	"github.com/wasteworks/backend/internal/domain/stock"
	"github.com/wasteworks/backend/internal/domain/waste"
	"go.uber.org/zap"
)

// ReceptionService handles the reception intake workflow
type ReceptionService struct {
	scope               TransactionScope
	receptionRepo       waste.ReceptionRepository
	productRepo         catalog.ProductRepository
	refData             ReferenceData
	eventPublisher      shared.EventPublisher
	manifestLinker      ManifestLinker
	allowedProductTypes []catalog.ProductType
	logger              *zap.Logger
}

// NewReceptionService creates a new ReceptionService
func NewReceptionService(
	scope TransactionScope,
	receptionRepo waste.ReceptionRepository,
	productRepo catalog.ProductRepository,
	refData ReferenceData,
	logger *zap.Logger,
) *ReceptionService {
	return &ReceptionService{
		scope:         scope,
		receptionRepo: receptionRepo,
		productRepo:   productRepo,
		refData:       refData,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ReceptionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetManifestLinker installs the optional regulatory manifest capability
func (s *ReceptionService) SetManifestLinker(linker ManifestLinker) {
	s.manifestLinker = linker
}

// SetAllowedProductTypes restricts which product types a reception line may
// target. An empty list allows any type.
func (s *ReceptionService) SetAllowedProductTypes(types []catalog.ProductType) {
	s.allowedProductTypes = types
}

// Create creates a new draft reception
func (s *ReceptionService) Create(ctx context.Context, tenantID uuid.UUID, req CreateReceptionRequest) (*ReceptionResponse, error) {
	receptionNumber, err := s.receptionRepo.GenerateReceptionNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	receptionDate := time.Now()
	if req.ReceptionDate != nil {
		receptionDate = *req.ReceptionDate
	}

	reception, err := waste.NewReception(tenantID, receptionNumber, req.PartnerID, req.SaleOrderID, receptionDate)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		reception.Notes = req.Notes
	}

	for _, lineReq := range req.Lines {
		input, err := s.buildLineInput(ctx, tenantID, lineReq)
		if err != nil {
			return nil, err
		}
		if _, err := reception.AddLine(input); err != nil {
			return nil, err
		}
	}

	if err := s.receptionRepo.Save(ctx, reception); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, reception)

	response := ToReceptionResponse(reception)
	return &response, nil
}

// GetByID retrieves a reception by ID
func (s *ReceptionService) GetByID(ctx context.Context, tenantID, receptionID uuid.UUID) (*ReceptionResponse, error) {
	reception, err := s.receptionRepo.FindByIDForTenant(ctx, tenantID, receptionID)
	if err != nil {
		return nil, err
	}
	response := ToReceptionResponse(reception)
	return &response, nil
}

// List retrieves receptions with filtering and pagination
func (s *ReceptionService) List(ctx context.Context, tenantID uuid.UUID, filter ReceptionListFilter) (*shared.Paginated[ReceptionResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.PartnerID != nil {
		domainFilter.Filters["partner_id"] = *filter.PartnerID
	}
	if filter.SaleOrderID != nil {
		domainFilter.Filters["sale_order_id"] = *filter.SaleOrderID
	}

	page, err := s.receptionRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.Paginated[ReceptionResponse]{
		Items:      ToReceptionResponses(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	return &result, nil
}

// ListBySaleOrder retrieves the receptions created for a sales order
func (s *ReceptionService) ListBySaleOrder(ctx context.Context, tenantID, saleOrderID uuid.UUID) ([]ReceptionResponse, error) {
	receptions, err := s.receptionRepo.FindBySaleOrder(ctx, tenantID, saleOrderID)
	if err != nil {
		return nil, err
	}
	return ToReceptionResponses(receptions), nil
}

// Update updates the header fields of a draft reception
func (s *ReceptionService) Update(ctx context.Context, tenantID, receptionID uuid.UUID, req UpdateReceptionRequest) (*ReceptionResponse, error) {
	reception, err := s.receptionRepo.FindByIDForTenant(ctx, tenantID, receptionID)
	if err != nil {
		return nil, err
	}
	if reception.Status != waste.ReceptionStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Reception can only be modified in draft status")
	}

	if req.ReceptionDate != nil {
		reception.ReceptionDate = *req.ReceptionDate
	}
	if req.Notes != nil {
		reception.Notes = *req.Notes
	}

	if err := s.receptionRepo.SaveWithLock(ctx, reception); err != nil {
		return nil, err
	}
	response := ToReceptionResponse(reception)
	return &response, nil
}

// AddLine adds a waste item to a draft reception
func (s *ReceptionService) AddLine(ctx context.Context, tenantID, receptionID uuid.UUID, req ReceptionLineRequest) (*ReceptionResponse, error) {
	reception, err := s.receptionRepo.FindByIDForTenant(ctx, tenantID, receptionID)
	if err != nil {
		return nil, err
	}

	input, err := s.buildLineInput(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	if _, err := reception.AddLine(input); err != nil {
		return nil, err
	}

	if err := s.receptionRepo.SaveWithLock(ctx, reception); err != nil {
		return nil, err
	}
	response := ToReceptionResponse(reception)
	return &response, nil
}

// UpdateLine updates a waste item on a draft reception
func (s *ReceptionService) UpdateLine(ctx context.Context, tenantID, receptionID, lineID uuid.UUID, req ReceptionLineRequest) (*ReceptionResponse, error) {
	reception, err := s.receptionRepo.FindByIDForTenant(ctx, tenantID, receptionID)
	if err != nil {
		return nil, err
	}

	input, err := s.buildLineInput(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}
	if err := reception.UpdateLine(lineID, input); err != nil {
		return nil, err
	}

	if err := s.receptionRepo.SaveWithLock(ctx, reception); err != nil {
		return nil, err
	}
	response := ToReceptionResponse(reception)
	return &response, nil
}

// RemoveLine removes a waste item from a draft reception
func (s *ReceptionService) RemoveLine(ctx context.Context, tenantID, receptionID, lineID uuid.UUID) (*ReceptionResponse, error) {
	reception, err := s.receptionRepo.FindByIDForTenant(ctx, tenantID, receptionID)
	if err != nil {
		return nil, err
	}

	if err := reception.RemoveLine(lineID); err != nil {
		return nil, err
	}

	if err := s.receptionRepo.SaveWithLock(ctx, reception); err != nil {
		return nil, err
	}
	response := ToReceptionResponse(reception)
	return &response, nil
}

// Confirm runs the full confirmation sequence: pre-flight line validation,
// movement build with lot resolution, orchestrated confirm/reserve/validate,
// state transition and classification propagation. Fatal errors roll the
// whole sequence back; a failed automatic validation does not, leaving the
// movement pending manual follow-up with the reception confirmed.
func (s *ReceptionService) Confirm(ctx context.Context, tenantID, receptionID uuid.UUID, req ConfirmReceptionRequest) (*ReceptionResponse, error) {
	var confirmed *waste.Reception

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		reception, err := repos.ReceptionRepo().FindByIDForTenant(ctx, tenantID, receptionID)
		if err != nil {
			return err
		}
		if err := reception.ValidateForConfirm(); err != nil {
			return err
		}

		resolver := NewLotResolver(repos.LotRepo())
		builder := NewMovementBuilder(s.refData, resolver, repos.ProductRepo(), s.logger)
		movement, err := builder.Build(ctx, reception)
		if err != nil {
			return err
		}

		gateway := stockapp.NewMovementService(repos.LotRepo(), s.logger)
		orchestrator := NewValidationOrchestrator(gateway, s.logger)
		if err := orchestrator.Drive(ctx, movement, req.SkipBackorderPrompts); err != nil {
			return err
		}

		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}
		if err := reception.Confirm(movement.ID); err != nil {
			return err
		}

		propagator := NewClassificationPropagator(resolver, repos.LotRepo(), s.logger)
		if err := propagator.Propagate(ctx, reception); err != nil {
			return err
		}

		if s.manifestLinker != nil {
			if err := s.manifestLinker.LinkReception(ctx, reception); err != nil {
				s.logger.Warn("manifest linking failed",
					zap.String("reception", reception.ReceptionNumber),
					zap.Error(err),
				)
			}
		}

		if err := repos.ReceptionRepo().SaveWithLock(ctx, reception); err != nil {
			return err
		}
		confirmed = reception
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, confirmed)
	response := ToReceptionResponse(confirmed)
	return &response, nil
}

// Cancel cancels a reception, cancelling its linked movement when one
// exists and is not yet done. A done movement represents physical stock
// already moved and blocks cancellation.
func (s *ReceptionService) Cancel(ctx context.Context, tenantID, receptionID uuid.UUID) (*ReceptionResponse, error) {
	var cancelled *waste.Reception

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		reception, err := repos.ReceptionRepo().FindByIDForTenant(ctx, tenantID, receptionID)
		if err != nil {
			return err
		}

		if reception.MovementID != nil {
			movement, err := repos.MovementRepo().FindByIDForTenant(ctx, tenantID, *reception.MovementID)
			if err != nil {
				return err
			}
			if movement.IsDone() {
				return shared.NewDomainError("MOVEMENT_DONE", "Cannot cancel, receipt already validated")
			}
			if movement.Status != stock.MovementStatusCancelled {
				if err := movement.Cancel(); err != nil {
					return err
				}
				if err := repos.MovementRepo().Save(ctx, movement); err != nil {
					return err
				}
			}
		}

		if err := reception.Cancel(); err != nil {
			return err
		}
		if err := repos.ReceptionRepo().SaveWithLock(ctx, reception); err != nil {
			return err
		}
		cancelled = reception
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, cancelled)
	response := ToReceptionResponse(cancelled)
	return &response, nil
}

// ResetToDraft reopens a cancelled reception for editing
func (s *ReceptionService) ResetToDraft(ctx context.Context, tenantID, receptionID uuid.UUID) (*ReceptionResponse, error) {
	reception, err := s.receptionRepo.FindByIDForTenant(ctx, tenantID, receptionID)
	if err != nil {
		return nil, err
	}

	if err := reception.ResetToDraft(); err != nil {
		return nil, err
	}
	if err := s.receptionRepo.SaveWithLock(ctx, reception); err != nil {
		return nil, err
	}

	response := ToReceptionResponse(reception)
	return &response, nil
}

// buildLineInput resolves the product projections for a line request and
// enforces the allowed-product-type policy
func (s *ReceptionService) buildLineInput(ctx context.Context, tenantID uuid.UUID, req ReceptionLineRequest) (waste.LineInput, error) {
	input := waste.LineInput{
		OriginDesc: req.OriginDesc,
		LotLabel:   req.LotLabel,
		Quantity:   req.Quantity,
		Classification: valueobject.Classification{
			Corrosive:  req.Corrosive,
			Reactive:   req.Reactive,
			Explosive:  req.Explosive,
			Toxic:      req.Toxic,
			Flammable:  req.Flammable,
			Biological: req.Biological,
		},
		HandlingTypeID: req.HandlingTypeID,
	}

	if req.ProductID != nil && *req.ProductID != uuid.Nil {
		product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, *req.ProductID)
		if err != nil {
			return waste.LineInput{}, err
		}
		if !s.productTypeAllowed(product.Type) {
			return waste.LineInput{}, shared.NewDomainError("PRODUCT_TYPE_NOT_ALLOWED",
				"Product "+product.DisplayName()+" cannot be used on a waste reception")
		}
		input.ProductID = product.ID
		input.ProductName = product.DisplayName()
		input.Unit = product.Unit
		input.CategoryName = product.CategoryName
	}

	return input, nil
}

func (s *ReceptionService) productTypeAllowed(productType catalog.ProductType) bool {
	if len(s.allowedProductTypes) == 0 {
		return true
	}
	for _, allowed := range s.allowedProductTypes {
		if allowed == productType {
			return true
		}
	}
	return false
}

// publishEvents publishes and clears the aggregate's pending domain events
func (s *ReceptionService) publishEvents(ctx context.Context, reception *waste.Reception) {
	if s.eventPublisher == nil || reception == nil {
		return
	}
	events := reception.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish reception events",
			zap.String("reception", reception.ReceptionNumber),
			zap.Error(err),
		)
		return
	}
	reception.ClearDomainEvents()
}
