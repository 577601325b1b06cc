package services

import (
	"context"
	"errors"
	"time"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
	"vendorhub/pkg/logger"
)

// LabelRequestInput is a seller's request for a shipping label.
// A zero Quantity requests labels for the whole commitment.
type LabelRequestInput struct {
	Quantity    int     `json:"quantity" validate:"omitempty,min=1"`
	WarehouseID *string `json:"warehouseId" validate:"omitempty,uuid"`
	Notes       *string `json:"notes" validate:"omitempty,max=2000"`
}

// ProcessLabelInput is the admin payload that moves a label request to a terminal status.
type ProcessLabelInput struct {
	Status   models.LabelStatus `json:"status" validate:"required,oneof=PENDING PROCESSED REJECTED"`
	LabelURL *string            `json:"labelUrl" validate:"omitempty,max=2048"`
	Notes    *string            `json:"notes" validate:"omitempty,max=2000"`
}

type LabelService struct {
	labels      repositories.LabelRequestRepository
	commitments repositories.CommitmentRepository
	warehouses  repositories.WarehouseRepository
	publisher   EventPublisher
	log         *logger.Logger
	now         func() time.Time
}

func NewLabelService(
	labels repositories.LabelRequestRepository,
	commitments repositories.CommitmentRepository,
	warehouses repositories.WarehouseRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *LabelService {
	return &LabelService{
		labels:      labels,
		commitments: commitments,
		warehouses:  warehouses,
		publisher:   publisher,
		log:         log.With("service", "LabelService"),
		now:         time.Now,
	}
}

// RequestLabel opens a PENDING label request on one of the actor's commitments.
func (s *LabelService) RequestLabel(ctx context.Context, actor *models.Profile, commitmentID string, in LabelRequestInput) (*models.LabelRequest, error) {
	if !access.IsAuthorized(actor, access.RequestLabels) {
		return nil, apperr.Forbidden("only sellers can request labels")
	}
	commitment, err := s.commitments.GetByID(ctx, commitmentID)
	if err != nil {
		return nil, mapRepoError(err, "commitment not found", "failed to load commitment")
	}
	if commitment.ProfileID != actor.ID {
		return nil, apperr.NotFound("commitment not found")
	}
	if commitment.Status == models.CommitmentStatusCancelled {
		return nil, apperr.InvalidInput("commitment is cancelled", nil)
	}

	quantity := in.Quantity
	if quantity == 0 {
		quantity = commitment.Quantity
	}
	if quantity > commitment.Quantity {
		return nil, apperr.InvalidInput("quantity exceeds the committed quantity", map[string]string{"quantity": "exceeds commitment"})
	}
	if in.WarehouseID != nil {
		warehouse, err := s.warehouses.GetByID(ctx, *in.WarehouseID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperr.InvalidInput("unknown warehouse", map[string]string{"warehouseId": "not found"})
			}
			return nil, apperr.Internal("failed to load warehouse", err)
		}
		if !warehouse.IsActive {
			return nil, apperr.InvalidInput("warehouse is not active", map[string]string{"warehouseId": "inactive"})
		}
	}

	request := &models.LabelRequest{
		CommitmentID: commitment.ID,
		ProfileID:    actor.ID,
		WarehouseID:  in.WarehouseID,
		Quantity:     quantity,
		Status:       models.LabelStatusPending,
		Notes:        in.Notes,
	}
	if err := s.labels.Create(ctx, request); err != nil {
		return nil, apperr.Internal("failed to create label request", err)
	}
	return request, nil
}

// ListLabelRequests returns every request to admins and the actor's own to sellers,
// optionally narrowed to one status.
func (s *LabelService) ListLabelRequests(ctx context.Context, actor *models.Profile, status models.LabelStatus) ([]models.LabelRequest, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("not authenticated")
	}
	filter := repositories.LabelRequestFilter{Status: status}
	if !actor.IsAdmin() {
		filter.ProfileID = actor.ID
	}
	requests, err := s.labels.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to list label requests", err)
	}
	return requests, nil
}

func (s *LabelService) GetLabelRequest(ctx context.Context, actor *models.Profile, id string) (*models.LabelRequest, error) {
	request, err := s.labels.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "label request not found", "failed to load label request")
	}
	if !access.CanAccessOwned(actor, request.ProfileID) {
		return nil, apperr.NotFound("label request not found")
	}
	return request, nil
}

// ProcessLabelRequest moves a request to a terminal status and stamps processedAt and
// processedById with the current time and actor. Processing an already processed request
// restamps both fields.
func (s *LabelService) ProcessLabelRequest(ctx context.Context, actor *models.Profile, id string, in ProcessLabelInput) (*models.LabelRequest, error) {
	if !access.IsAuthorized(actor, access.ProcessLabels) {
		return nil, apperr.Forbidden("only admins can process label requests")
	}
	if !in.Status.IsTerminal() {
		return nil, apperr.InvalidInput("label requests cannot be moved back to PENDING", map[string]string{"status": "must be PROCESSED or REJECTED"})
	}

	request, err := s.labels.Process(ctx, id, repositories.LabelProcessUpdate{
		Status:        in.Status,
		LabelURL:      in.LabelURL,
		Notes:         in.Notes,
		ProcessedAt:   s.now(),
		ProcessedByID: actor.ID,
	})
	if err != nil {
		return nil, mapRepoError(err, "label request not found", "failed to process label request")
	}

	publishEvent(s.publisher, s.log, EventLabelProcessed, map[string]interface{}{
		"labelRequestId": request.ID,
		"profileId":      request.ProfileID,
		"status":         request.Status,
		"labelUrl":       request.LabelURL,
		"processedById":  actor.ID,
	})
	return request, nil
}
