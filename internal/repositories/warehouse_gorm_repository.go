package repositories

import (
	"context"
	"fmt"
	"strings"

	"vendorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GORMWarehouseRepository struct {
	db *gorm.DB
}

func NewGORMWarehouseRepository(db *gorm.DB) *GORMWarehouseRepository {
	return &GORMWarehouseRepository{db: db}
}

func (r *GORMWarehouseRepository) List(ctx context.Context, activeOnly bool) ([]models.Warehouse, error) {
	q := r.db.WithContext(ctx).Order("code ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var warehouses []models.Warehouse
	if err := q.Find(&warehouses).Error; err != nil {
		return nil, fmt.Errorf("failed to list warehouses: %w", err)
	}
	return warehouses, nil
}

func (r *GORMWarehouseRepository) GetByID(ctx context.Context, id string) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		return nil, translate(err, "warehouse with ID %s", id)
	}
	return &warehouse, nil
}

func (r *GORMWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	if warehouse.ID == "" {
		warehouse.ID = uuid.New().String()
	}
	warehouse.Code = strings.ToUpper(strings.TrimSpace(warehouse.Code))
	if err := r.db.WithContext(ctx).Create(warehouse).Error; err != nil {
		return translate(err, "failed to create warehouse %s", warehouse.Code)
	}
	return nil
}

func (r *GORMWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	warehouse.Code = strings.ToUpper(strings.TrimSpace(warehouse.Code))
	if err := r.db.WithContext(ctx).Save(warehouse).Error; err != nil {
		return translate(err, "failed to update warehouse %s", warehouse.ID)
	}
	return nil
}

func (r *GORMWarehouseRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Warehouse{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete warehouse %s", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("warehouse with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
