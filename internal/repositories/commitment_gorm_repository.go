package repositories

import (
	"context"
	"errors"
	"fmt"

	"vendorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GORMCommitmentRepository struct {
	db *gorm.DB
}

func NewGORMCommitmentRepository(db *gorm.DB) *GORMCommitmentRepository {
	return &GORMCommitmentRepository{db: db}
}

func (r *GORMCommitmentRepository) CreateWithinLimit(ctx context.Context, commitment *models.Commitment, limit int) error {
	if commitment.ID == "" {
		commitment.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Concurrent commits on the same deal queue on the deal row.
		var deal models.Deal
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&deal, "id = ?", commitment.DealID).Error; err != nil {
			return err
		}
		var committed int
		err := tx.Model(&models.Commitment{}).
			Select("COALESCE(SUM(quantity), 0)").
			Where("deal_id = ? AND profile_id = ? AND status <> ?", commitment.DealID, commitment.ProfileID, models.CommitmentStatusCancelled).
			Scan(&committed).Error
		if err != nil {
			return err
		}
		if committed+commitment.Quantity > limit {
			return ErrLimitExceeded
		}
		return tx.Create(commitment).Error
	})
	if errors.Is(err, ErrLimitExceeded) {
		return err
	}
	if err != nil {
		return translate(err, "failed to create commitment on deal %s", commitment.DealID)
	}
	return nil
}

func (r *GORMCommitmentRepository) GetByID(ctx context.Context, id string) (*models.Commitment, error) {
	var commitment models.Commitment
	if err := r.db.WithContext(ctx).Preload("Deal").First(&commitment, "id = ?", id).Error; err != nil {
		return nil, translate(err, "commitment with ID %s", id)
	}
	return &commitment, nil
}

func (r *GORMCommitmentRepository) List(ctx context.Context, profileID string) ([]models.Commitment, error) {
	q := r.db.WithContext(ctx).Preload("Deal").Order("created_at DESC")
	if profileID != "" {
		q = q.Where("profile_id = ?", profileID)
	}
	var commitments []models.Commitment
	if err := q.Find(&commitments).Error; err != nil {
		return nil, fmt.Errorf("failed to list commitments: %w", err)
	}
	return commitments, nil
}
