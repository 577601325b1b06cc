package repositories

import (
	"context"
	"fmt"

	"vendorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMDealRepository is a GORM implementation of DealRepository.
type GORMDealRepository struct {
	db *gorm.DB
}

func NewGORMDealRepository(db *gorm.DB) *GORMDealRepository {
	return &GORMDealRepository{db: db}
}

// List returns deals newest first.
func (r *GORMDealRepository) List(ctx context.Context, filter DealFilter) ([]models.Deal, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	var deals []models.Deal
	if err := q.Find(&deals).Error; err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

func (r *GORMDealRepository) GetByID(ctx context.Context, id string) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.WithContext(ctx).First(&deal, "id = ?", id).Error; err != nil {
		return nil, translate(err, "deal with ID %s", id)
	}
	return &deal, nil
}

func (r *GORMDealRepository) Create(ctx context.Context, deal *models.Deal) error {
	if deal.ID == "" {
		deal.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(deal).Error; err != nil {
		return translate(err, "failed to create deal")
	}
	return nil
}

// Update saves all fields of an existing deal, re-deriving its price type.
func (r *GORMDealRepository) Update(ctx context.Context, deal *models.Deal) error {
	if err := r.db.WithContext(ctx).Save(deal).Error; err != nil {
		return translate(err, "failed to update deal %s", deal.ID)
	}
	return nil
}

func (r *GORMDealRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Deal{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete deal %s", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deal with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
