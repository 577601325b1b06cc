package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
	"vendorhub/pkg/logger"
)

type CommitmentInput struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// CommitmentService handles vendor commitments against deals.
type CommitmentService struct {
	commitments repositories.CommitmentRepository
	deals       repositories.DealRepository
	publisher   EventPublisher
	log         *logger.Logger
	now         func() time.Time
}

func NewCommitmentService(commitments repositories.CommitmentRepository, deals repositories.DealRepository, publisher EventPublisher, log *logger.Logger) *CommitmentService {
	return &CommitmentService{
		commitments: commitments,
		deals:       deals,
		publisher:   publisher,
		log:         log.With("service", "CommitmentService"),
		now:         time.Now,
	}
}

// Commit claims quantity units of an open deal for the actor, bounded by the deal's per-vendor limit.
func (s *CommitmentService) Commit(ctx context.Context, actor *models.Profile, dealID string, in CommitmentInput) (*models.Commitment, error) {
	if !access.IsAuthorized(actor, access.CommitToDeals) {
		return nil, apperr.Forbidden("only sellers can commit to deals")
	}
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return nil, mapRepoError(err, "deal not found", "failed to load deal")
	}
	if !access.CanViewDeal(actor, deal) {
		return nil, apperr.NotFound("deal not found")
	}
	if !deal.IsOpenAt(s.now()) {
		return nil, apperr.InvalidInput("deal is not accepting commitments", nil)
	}

	commitment := &models.Commitment{
		DealID:    deal.ID,
		ProfileID: actor.ID,
		Quantity:  in.Quantity,
		Status:    models.CommitmentStatusPending,
	}
	if err := s.commitments.CreateWithinLimit(ctx, commitment, deal.LimitPerVendor); err != nil {
		if errors.Is(err, repositories.ErrLimitExceeded) {
			return nil, apperr.InvalidInput(
				fmt.Sprintf("quantity exceeds the per-vendor limit of %d", deal.LimitPerVendor),
				map[string]string{"quantity": "exceeds limit"},
			)
		}
		return nil, mapRepoError(err, "deal not found", "failed to create commitment")
	}
	commitment.Deal = deal

	publishEvent(s.publisher, s.log, EventCommitmentCreated, map[string]interface{}{
		"commitmentId": commitment.ID,
		"dealId":       deal.ID,
		"profileId":    actor.ID,
		"quantity":     commitment.Quantity,
	})
	return commitment, nil
}

// ListCommitments returns every commitment to admins and the actor's own to sellers.
func (s *CommitmentService) ListCommitments(ctx context.Context, actor *models.Profile) ([]models.Commitment, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("not authenticated")
	}
	profileID := actor.ID
	if actor.IsAdmin() {
		profileID = ""
	}
	commitments, err := s.commitments.List(ctx, profileID)
	if err != nil {
		return nil, apperr.Internal("failed to list commitments", err)
	}
	return commitments, nil
}

// GetCommitment returns a commitment the actor owns (or any, for admins).
func (s *CommitmentService) GetCommitment(ctx context.Context, actor *models.Profile, id string) (*models.Commitment, error) {
	commitment, err := s.commitments.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "commitment not found", "failed to load commitment")
	}
	if !access.CanAccessOwned(actor, commitment.ProfileID) {
		return nil, apperr.NotFound("commitment not found")
	}
	return commitment, nil
}
