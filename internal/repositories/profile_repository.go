package repositories

import (
	"context"

	"vendorhub/internal/models"
)

// ProfileRepository defines data access for application profiles.
type ProfileRepository interface {
	// Create stores the profile and assigns the next vendor number.
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	ClearDiscord(ctx context.Context, id string) error
}
