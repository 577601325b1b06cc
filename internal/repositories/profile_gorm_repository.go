package repositories

import (
	"context"
	"fmt"
	"strings"

	"vendorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GORMProfileRepository struct {
	db *gorm.DB
}

func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{db: db}
}

// Create assigns max(vendor_number)+1 inside a transaction; the unique index rejects a concurrent
// writer that picked the same number.
func (r *GORMProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.Profile{}).Select("COALESCE(MAX(vendor_number), 0)").Scan(&last).Error; err != nil {
			return err
		}
		profile.VendorNumber = last + 1
		return tx.Create(profile).Error
	})
	if err != nil {
		return translate(err, "failed to create profile for user %s", profile.UserID)
	}
	return nil
}

func (r *GORMProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translate(err, "profile with ID %s", id)
	}
	return &profile, nil
}

func (r *GORMProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err, "profile for user %s", userID)
	}
	return &profile, nil
}

func (r *GORMProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "email = ?", email).Error; err != nil {
		return nil, translate(err, "profile with email %s", email)
	}
	return &profile, nil
}

func (r *GORMProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Order("vendor_number ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Update writes every column of an existing profile. Callers load the profile first.
func (r *GORMProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return translate(err, "failed to update profile %s", profile.ID)
	}
	return nil
}

func (r *GORMProfileRepository) ClearDiscord(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"discord_id":        nil,
		"discord_username":  nil,
		"discord_linked_at": nil,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to unlink discord for profile %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
