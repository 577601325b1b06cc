package repositories

import (
	"context"
	"time"

	"vendorhub/internal/models"
)

// LabelRequestFilter narrows label request listings. Empty fields match everything.
type LabelRequestFilter struct {
	ProfileID string
	Status    models.LabelStatus
}

// LabelProcessUpdate is the set of columns written when an admin processes a label request.
// Nil LabelURL and Notes leave the stored values unchanged.
type LabelProcessUpdate struct {
	Status        models.LabelStatus
	LabelURL      *string
	Notes         *string
	ProcessedAt   time.Time
	ProcessedByID string
}

type LabelRequestRepository interface {
	Create(ctx context.Context, request *models.LabelRequest) error
	GetByID(ctx context.Context, id string) (*models.LabelRequest, error)
	List(ctx context.Context, filter LabelRequestFilter) ([]models.LabelRequest, error)
	// Process applies the update and returns the stored request.
	Process(ctx context.Context, id string, update LabelProcessUpdate) (*models.LabelRequest, error)
}
