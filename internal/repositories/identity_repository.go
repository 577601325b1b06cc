package repositories

import (
	"context"

	"vendorhub/internal/models"
)

// IdentityRepository defines data access for authentication accounts.
type IdentityRepository interface {
	Create(ctx context.Context, identity *models.Identity) error
	GetByID(ctx context.Context, id string) (*models.Identity, error)
	GetByEmail(ctx context.Context, email string) (*models.Identity, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateEmail(ctx context.Context, id, email string) error
}
