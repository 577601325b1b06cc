package repositories

import (
	"context"

	"vendorhub/internal/models"
)

// DealFilter narrows deal listings. A nil Status returns every deal.
type DealFilter struct {
	Status *models.DealStatus
}

// DealRepository defines the interface for deal data access.
type DealRepository interface {
	List(ctx context.Context, filter DealFilter) ([]models.Deal, error)
	GetByID(ctx context.Context, id string) (*models.Deal, error)
	Create(ctx context.Context, deal *models.Deal) error
	Update(ctx context.Context, deal *models.Deal) error
	Delete(ctx context.Context, id string) error
}
