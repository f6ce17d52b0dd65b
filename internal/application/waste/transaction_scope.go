package waste

import (
	"context"

	"github.com/wasteworks/backend/internal/domain/catalog"
	"github.com/wasteworks/backend/internal/domain/stock"
	"github.com/wasteworks/backend/internal/domain/waste"
)

// TransactionScope provides transactional access to the repositories the
// reception workflow touches. Confirmation and cancellation span several
// aggregates (reception, movement, lots, products) and must commit or roll
// back as one unit, with one deliberate exception: a failed automatic
// validation still commits, because physical receipt must be recorded even
// when automated bookkeeping cannot fully close.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories sharing the
// current transaction
type TransactionalRepositories interface {
	// ReceptionRepo returns the reception repository scoped to the transaction
	ReceptionRepo() waste.ReceptionRepository
	// MovementRepo returns the movement repository scoped to the transaction
	MovementRepo() stock.MovementRepository
	// LotRepo returns the lot repository scoped to the transaction
	LotRepo() stock.LotRepository
	// ProductRepo returns the product repository scoped to the transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for callers that manage atomicity elsewhere.
type NoOpTransactionScope struct {
	receptionRepo waste.ReceptionRepository
	movementRepo  stock.MovementRepository
	lotRepo       stock.LotRepository
	productRepo   catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	receptionRepo waste.ReceptionRepository,
	movementRepo stock.MovementRepository,
	lotRepo stock.LotRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		receptionRepo: receptionRepo,
		movementRepo:  movementRepo,
		lotRepo:       lotRepo,
		productRepo:   productRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ReceptionRepo returns the reception repository
func (s *NoOpTransactionScope) ReceptionRepo() waste.ReceptionRepository {
	return s.receptionRepo
}

// MovementRepo returns the movement repository
func (s *NoOpTransactionScope) MovementRepo() stock.MovementRepository {
	return s.movementRepo
}

// LotRepo returns the lot repository
func (s *NoOpTransactionScope) LotRepo() stock.LotRepository {
	return s.lotRepo
}

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
