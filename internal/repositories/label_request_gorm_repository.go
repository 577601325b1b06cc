package repositories

import (
	"context"
	"fmt"

	"vendorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GORMLabelRequestRepository struct {
	db *gorm.DB
}

func NewGORMLabelRequestRepository(db *gorm.DB) *GORMLabelRequestRepository {
	return &GORMLabelRequestRepository{db: db}
}

func (r *GORMLabelRequestRepository) Create(ctx context.Context, request *models.LabelRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return translate(err, "failed to create label request for commitment %s", request.CommitmentID)
	}
	return nil
}

func (r *GORMLabelRequestRepository) GetByID(ctx context.Context, id string) (*models.LabelRequest, error) {
	var request models.LabelRequest
	if err := r.db.WithContext(ctx).Preload("Commitment.Deal").First(&request, "id = ?", id).Error; err != nil {
		return nil, translate(err, "label request with ID %s", id)
	}
	return &request, nil
}

func (r *GORMLabelRequestRepository) List(ctx context.Context, filter LabelRequestFilter) ([]models.LabelRequest, error) {
	q := r.db.WithContext(ctx).Preload("Commitment.Deal").Order("created_at DESC")
	if filter.ProfileID != "" {
		q = q.Where("profile_id = ?", filter.ProfileID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var requests []models.LabelRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list label requests: %w", err)
	}
	return requests, nil
}

func (r *GORMLabelRequestRepository) Process(ctx context.Context, id string, update LabelProcessUpdate) (*models.LabelRequest, error) {
	columns := map[string]interface{}{
		"status":          update.Status,
		"processed_at":    update.ProcessedAt,
		"processed_by_id": update.ProcessedByID,
	}
	if update.LabelURL != nil {
		columns["label_url"] = *update.LabelURL
	}
	if update.Notes != nil {
		columns["notes"] = *update.Notes
	}
	res := r.db.WithContext(ctx).Model(&models.LabelRequest{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to process label request %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("label request with ID %s: %w", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}
