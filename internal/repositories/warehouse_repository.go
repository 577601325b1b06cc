package repositories

import (
	"context"

	"vendorhub/internal/models"
)

type WarehouseRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Warehouse, error)
	GetByID(ctx context.Context, id string) (*models.Warehouse, error)
	Create(ctx context.Context, warehouse *models.Warehouse) error
	Update(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, id string) error
}
