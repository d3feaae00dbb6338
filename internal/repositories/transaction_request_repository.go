package repositories

import (
	"context"
	"fmt"

	"operations-api/internal/models"
	"operations-api/internal/predicate"

	"gorm.io/gorm"
)

// transactionRequestRepository implements TransactionRequestRepositoryInterface
type transactionRequestRepository struct {
	db *gorm.DB
}

// NewTransactionRequestRepository creates a new transaction request repository
func NewTransactionRequestRepository(db *gorm.DB) TransactionRequestRepositoryInterface {
	return &transactionRequestRepository{
		db: db,
	}
}

// FindAll retrieves one page of transaction requests matching filter
func (r *transactionRequestRepository) FindAll(ctx context.Context, filter predicate.Predicate, page models.PageRequest) (*models.Page[models.TransactionRequest], error) {
	result, err := findPage[models.TransactionRequest](ctx, r.db, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction requests: %w", err)
	}
	return result, nil
}
