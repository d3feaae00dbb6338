package repositories

import (
	"context"
	"fmt"

	"operations-api/internal/models"
	"operations-api/internal/predicate"

	"gorm.io/gorm"
)

// transferRepository implements TransferRepositoryInterface
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) TransferRepositoryInterface {
	return &transferRepository{
		db: db,
	}
}

// FindAll retrieves one page of transfers matching filter
func (r *transferRepository) FindAll(ctx context.Context, filter predicate.Predicate, page models.PageRequest) (*models.Page[models.Transfer], error) {
	result, err := findPage[models.Transfer](ctx, r.db, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to find transfers: %w", err)
	}
	return result, nil
}
