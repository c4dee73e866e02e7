package order

import (
	"context"

	"github.com/modernstore/backend/internal/domain/catalog"
	"github.com/modernstore/backend/internal/domain/discount"
	"github.com/modernstore/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories a
// checkout touches. All repository operations performed inside Execute are
// part of the same database transaction and commit or roll back as one.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the checkout repositories
// within a transaction. All repositories returned share the same underlying
// database transaction, so stock decrements, discount usage bumps and the
// order insert become visible together or not at all.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.Repository
	// DiscountRepo returns the discount code repository scoped to the current transaction
	DiscountRepo() discount.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	orderRepo    order.Repository
	discountRepo discount.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	discountRepo discount.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		discountRepo: discountRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.Repository {
	return s.orderRepo
}

// DiscountRepo returns the discount code repository.
func (s *NoOpTransactionScope) DiscountRepo() discount.Repository {
	return s.discountRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
