package repositories

import (
	"context"

	"vendorhub/internal/models"
)

type CommitmentRepository interface {
	// CreateWithinLimit stores the commitment unless the vendor's open quantity on the deal
	// would exceed limit, in which case it returns ErrLimitExceeded. The deal row is locked for
	// the check so concurrent commits are counted one after another.
	CreateWithinLimit(ctx context.Context, commitment *models.Commitment, limit int) error
	GetByID(ctx context.Context, id string) (*models.Commitment, error)
	// List returns commitments newest first; an empty profileID lists every vendor's.
	List(ctx context.Context, profileID string) ([]models.Commitment, error)
}
