package repositories

import (
	"context"

	"operations-api/internal/models"
	"operations-api/internal/predicate"
)

// TransferRepositoryInterface defines the contract for transfer queries
type TransferRepositoryInterface interface {
	FindAll(ctx context.Context, filter predicate.Predicate, page models.PageRequest) (*models.Page[models.Transfer], error)
}

// TransactionRequestRepositoryInterface defines the contract for transaction request queries
type TransactionRequestRepositoryInterface interface {
	FindAll(ctx context.Context, filter predicate.Predicate, page models.PageRequest) (*models.Page[models.TransactionRequest], error)
}
