package repositories

import (
	"context"
	"fmt"
	"strings"

	"vendorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMIdentityRepository is a GORM implementation of IdentityRepository.
type GORMIdentityRepository struct {
	db *gorm.DB
}

func NewGORMIdentityRepository(db *gorm.DB) *GORMIdentityRepository {
	return &GORMIdentityRepository{db: db}
}

func (r *GORMIdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	if identity.ID == "" {
		identity.ID = uuid.New().String()
	}
	identity.Email = strings.ToLower(strings.TrimSpace(identity.Email))
	if err := r.db.WithContext(ctx).Create(identity).Error; err != nil {
		return translate(err, "failed to create identity %s", identity.Email)
	}
	return nil
}

func (r *GORMIdentityRepository) GetByID(ctx context.Context, id string) (*models.Identity, error) {
	var identity models.Identity
	if err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error; err != nil {
		return nil, translate(err, "identity with ID %s", id)
	}
	return &identity, nil
}

func (r *GORMIdentityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var identity models.Identity
	if err := r.db.WithContext(ctx).First(&identity, "email = ?", email).Error; err != nil {
		return nil, translate(err, "identity with email %s", email)
	}
	return &identity, nil
}

func (r *GORMIdentityRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return r.updateColumn(ctx, id, "password_hash", hash)
}

func (r *GORMIdentityRepository) UpdateEmail(ctx context.Context, id, email string) error {
	return r.updateColumn(ctx, id, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (r *GORMIdentityRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Identity{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return translate(res.Error, "failed to update identity %s", id)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("identity with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
