package waste

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/shared"
	"github.com/wasteworks/backend/internal/domain/stock"
	"github.com/wasteworks/backend/internal/domain/waste"
	"go.uber.org/zap"
)

type serviceFixture struct {
	receptionRepo *MockReceptionRepository
	movementRepo  *MockMovementRepository
	lotRepo       *MockLotRepository
	productRepo   *MockProductRepository
	service       *ReceptionService
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		receptionRepo: new(MockReceptionRepository),
		movementRepo:  new(MockMovementRepository),
		lotRepo:       new(MockLotRepository),
		productRepo:   new(MockProductRepository),
	}
	scope := NewNoOpTransactionScope(f.receptionRepo, f.movementRepo, f.lotRepo, f.productRepo)
	f.service = NewReceptionService(scope, f.receptionRepo, f.productRepo, staticReferenceData{}, zap.NewNop())
	return f
}

// fakeLotRepo is an in-memory lot store keyed by (product, label), used
// where the confirm flow both creates and re-reads lots in one pass
type fakeLotRepo struct {
	lots map[string]*stock.Lot
}

func newFakeLotRepo() *fakeLotRepo {
	return &fakeLotRepo{lots: make(map[string]*stock.Lot)}
}

func (f *fakeLotRepo) key(productID uuid.UUID, label string) string {
	return productID.String() + "/" + label
}

func (f *fakeLotRepo) FindByLabel(_ context.Context, _, productID uuid.UUID, label string) (*stock.Lot, error) {
	if lot, ok := f.lots[f.key(productID, label)]; ok {
		return lot, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeLotRepo) FindByIDForTenant(_ context.Context, _, id uuid.UUID) (*stock.Lot, error) {
	for _, lot := range f.lots {
		if lot.ID == id {
			return lot, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeLotRepo) FindExpiringOn(_ context.Context, _ time.Time) ([]stock.Lot, error) {
	return nil, nil
}

func (f *fakeLotRepo) FindAllForTenant(_ context.Context, _ uuid.UUID, _ shared.Filter) (*shared.Paginated[stock.Lot], error) {
	return &shared.Paginated[stock.Lot]{}, nil
}

func (f *fakeLotRepo) Save(_ context.Context, lot *stock.Lot) error {
	f.lots[f.key(lot.ProductID, lot.Label)] = lot
	return nil
}

// recordingManifestLinker captures linked receptions and can simulate failures
type recordingManifestLinker struct {
	linked []uuid.UUID
	err    error
}

func (r *recordingManifestLinker) LinkReception(_ context.Context, reception *waste.Reception) error {
	r.linked = append(r.linked, reception.ID)
	return r.err
}

func newStorableProduct(t *testing.T, tenantID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(tenantID, "WO-01", "Waste Oil", "kg", catalog.ProductTypeStorable)
	require.NoError(t, err)
	return product
}

func TestReceptionServiceCreate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates draft with projected line fields", func(t *testing.T) {
		f := newServiceFixture()
		product := newStorableProduct(t, tenantID)

		f.receptionRepo.On("GenerateReceptionNumber", ctx, tenantID).Return("REC-2024-00001", nil)
		f.productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		f.receptionRepo.On("Save", ctx, mock.AnythingOfType("*waste.Reception")).Return(nil)

		productID := product.ID
		resp, err := f.service.Create(ctx, tenantID, CreateReceptionRequest{
			PartnerID: uuid.New(),
			Lines: []ReceptionLineRequest{{
				ProductID:  &productID,
				OriginDesc: "Drums",
				Quantity:   decimal.NewFromInt(3),
				Toxic:      true,
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "REC-2024-00001", resp.ReceptionNumber)
		assert.Equal(t, waste.ReceptionStatusDraft.String(), resp.Status)
		require.Len(t, resp.Lines, 1)
		assert.Equal(t, "[WO-01] Waste Oil", resp.Lines[0].ProductName)
		assert.Equal(t, "kg", resp.Lines[0].Unit)
		assert.Equal(t, "T", resp.Lines[0].ClassificationDisplay)
	})

	t.Run("disallowed product type rejected", func(t *testing.T) {
		f := newServiceFixture()
		f.service.SetAllowedProductTypes([]catalog.ProductType{catalog.ProductTypeConsumable})

		product := newStorableProduct(t, tenantID)
		f.receptionRepo.On("GenerateReceptionNumber", ctx, tenantID).Return("REC-2024-00002", nil)
		f.productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)

		productID := product.ID
		_, err := f.service.Create(ctx, tenantID, CreateReceptionRequest{
			PartnerID: uuid.New(),
			Lines: []ReceptionLineRequest{{
				ProductID:  &productID,
				OriginDesc: "Drums",
				Quantity:   decimal.NewFromInt(3),
			}},
		})
		assert.Error(t, err)
	})
}

func TestReceptionServiceConfirm(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	setupDraft := func(t *testing.T, f *serviceFixture, lotLabel string) (*waste.Reception, *catalog.Product) {
		product := newStorableProduct(t, tenantID)
		product.EnableLotTracking()

		reception, err := waste.NewReception(tenantID, "REC-2024-00001", uuid.New(), nil, time.Now())
		require.NoError(t, err)
		reception.ClearDomainEvents()
		_, err = reception.AddLine(waste.LineInput{
			ProductID:   product.ID,
			ProductName: product.DisplayName(),
			OriginDesc:  "Drums",
			LotLabel:    lotLabel,
			Quantity:    decimal.NewFromInt(3),
			Unit:        "kg",
		})
		require.NoError(t, err)

		f.receptionRepo.On("FindByIDForTenant", ctx, tenantID, reception.ID).Return(reception, nil)
		return reception, product
	}

	t.Run("end to end with new lot", func(t *testing.T) {
		lotRepo := newFakeLotRepo()
		receptionRepo := new(MockReceptionRepository)
		movementRepo := new(MockMovementRepository)
		productRepo := new(MockProductRepository)
		scope := NewNoOpTransactionScope(receptionRepo, movementRepo, lotRepo, productRepo)
		service := NewReceptionService(scope, receptionRepo, productRepo, staticReferenceData{}, zap.NewNop())

		f := &serviceFixture{receptionRepo: receptionRepo, movementRepo: movementRepo, productRepo: productRepo}
		reception, product := setupDraft(t, f, "M-001")

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*stock.Movement")).Return(nil)
		receptionRepo.On("SaveWithLock", ctx, reception).Return(nil)

		resp, err := service.Confirm(ctx, tenantID, reception.ID, ConfirmReceptionRequest{SkipBackorderPrompts: true})
		require.NoError(t, err)

		assert.Equal(t, waste.ReceptionStatusConfirmed.String(), resp.Status)
		require.NotNil(t, resp.MovementID)

		// the lot was materialized during validation and annotated afterwards
		materialized, err := lotRepo.FindByLabel(ctx, tenantID, product.ID, "M-001")
		require.NoError(t, err)
		assert.Equal(t, "M-001", materialized.Label)
		require.NotNil(t, materialized.ReceptionDate)
	})

	t.Run("manifest linker failure does not fail the confirm", func(t *testing.T) {
		lotRepo := newFakeLotRepo()
		receptionRepo := new(MockReceptionRepository)
		movementRepo := new(MockMovementRepository)
		productRepo := new(MockProductRepository)
		scope := NewNoOpTransactionScope(receptionRepo, movementRepo, lotRepo, productRepo)
		service := NewReceptionService(scope, receptionRepo, productRepo, staticReferenceData{}, zap.NewNop())

		linker := &recordingManifestLinker{err: shared.NewDomainError("MANIFEST_UNAVAILABLE", "manifest service down")}
		service.SetManifestLinker(linker)

		f := &serviceFixture{receptionRepo: receptionRepo, movementRepo: movementRepo, productRepo: productRepo}
		reception, product := setupDraft(t, f, "M-002")

		productRepo.On("FindByIDForTenant", ctx, tenantID, product.ID).Return(product, nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*stock.Movement")).Return(nil)
		receptionRepo.On("SaveWithLock", ctx, reception).Return(nil)

		resp, err := service.Confirm(ctx, tenantID, reception.ID, ConfirmReceptionRequest{SkipBackorderPrompts: true})
		require.NoError(t, err)
		assert.Equal(t, waste.ReceptionStatusConfirmed.String(), resp.Status)
		assert.Equal(t, []uuid.UUID{reception.ID}, linker.linked)
	})

	t.Run("no lines fails and stays draft", func(t *testing.T) {
		f := newServiceFixture()
		reception, err := waste.NewReception(tenantID, "REC-2024-00002", uuid.New(), nil, time.Now())
		require.NoError(t, err)
		f.receptionRepo.On("FindByIDForTenant", ctx, tenantID, reception.ID).Return(reception, nil)

		_, err = f.service.Confirm(ctx, tenantID, reception.ID, ConfirmReceptionRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one waste item")
		assert.Equal(t, waste.ReceptionStatusDraft, reception.Status)
	})
}

func TestReceptionServiceCancel(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newConfirmedReception := func(t *testing.T, movementID uuid.UUID) *waste.Reception {
		reception, err := waste.NewReception(tenantID, "REC-2024-00003", uuid.New(), nil, time.Now())
		require.NoError(t, err)
		_, err = reception.AddLine(waste.LineInput{
			ProductID:   uuid.New(),
			ProductName: "[WO-01] Waste Oil",
			OriginDesc:  "Drums",
			Quantity:    decimal.NewFromInt(3),
		})
		require.NoError(t, err)
		require.NoError(t, reception.Confirm(movementID))
		reception.ClearDomainEvents()
		return reception
	}

	newLinkedMovement := func(t *testing.T) *stock.Movement {
		movement, err := stock.NewInboundMovement(tenantID, "REC-2024-00003", uuid.New(),
			stock.DefaultCustomerLocation().ID, stock.DefaultWarehouseLocation().ID, time.Now())
		require.NoError(t, err)
		item, err := movement.AddItem(uuid.New(), "Waste Oil", decimal.NewFromInt(3), "kg", nil, "")
		require.NoError(t, err)
		require.NoError(t, movement.Confirm())
		require.NoError(t, movement.ApplyReservation(map[uuid.UUID]decimal.Decimal{item.ID: decimal.NewFromInt(3)}))
		return movement
	}

	t.Run("done movement blocks cancellation", func(t *testing.T) {
		f := newServiceFixture()
		movement := newLinkedMovement(t)
		_, err := movement.Validate()
		require.NoError(t, err)
		require.True(t, movement.IsDone())

		reception := newConfirmedReception(t, movement.ID)
		f.receptionRepo.On("FindByIDForTenant", ctx, tenantID, reception.ID).Return(reception, nil)
		f.movementRepo.On("FindByIDForTenant", ctx, tenantID, movement.ID).Return(movement, nil)

		_, err = f.service.Cancel(ctx, tenantID, reception.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already validated")
		assert.Equal(t, waste.ReceptionStatusConfirmed, reception.Status)
	})

	t.Run("pending movement cancelled with reception", func(t *testing.T) {
		f := newServiceFixture()
		movement := newLinkedMovement(t)
		reception := newConfirmedReception(t, movement.ID)

		f.receptionRepo.On("FindByIDForTenant", ctx, tenantID, reception.ID).Return(reception, nil)
		f.movementRepo.On("FindByIDForTenant", ctx, tenantID, movement.ID).Return(movement, nil)
		f.movementRepo.On("Save", ctx, movement).Return(nil)
		f.receptionRepo.On("SaveWithLock", ctx, reception).Return(nil)

		resp, err := f.service.Cancel(ctx, tenantID, reception.ID)
		require.NoError(t, err)
		assert.Equal(t, waste.ReceptionStatusCancelled.String(), resp.Status)
		assert.Equal(t, stock.MovementStatusCancelled, movement.Status)
		assert.NotNil(t, resp.MovementID)
	})
}

func TestReceptionServiceResetToDraft(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newServiceFixture()

	reception, err := waste.NewReception(tenantID, "REC-2024-00004", uuid.New(), nil, time.Now())
	require.NoError(t, err)
	_, err = reception.AddLine(waste.LineInput{
		ProductID:   uuid.New(),
		ProductName: "[WO-01] Waste Oil",
		OriginDesc:  "Drums",
		Quantity:    decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	require.NoError(t, reception.Confirm(uuid.New()))
	require.NoError(t, reception.Cancel())
	reception.ClearDomainEvents()

	f.receptionRepo.On("FindByIDForTenant", ctx, tenantID, reception.ID).Return(reception, nil)
	f.receptionRepo.On("SaveWithLock", ctx, reception).Return(nil)

	resp, err := f.service.ResetToDraft(ctx, tenantID, reception.ID)
	require.NoError(t, err)
	assert.Equal(t, waste.ReceptionStatusDraft.String(), resp.Status)
	assert.Nil(t, resp.MovementID)
}
