package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCommitmentService_Commit(t *testing.T) {
	ctx := context.Background()
	seller := sellerProfile()
	open := &models.Deal{ID: "d-1", Status: models.DealStatusActive, LimitPerVendor: 5}

	t.Run("creates a pending commitment and publishes", func(t *testing.T) {
		commitments := new(MockCommitmentRepository)
		deals := new(MockDealRepository)
		publisher := new(MockEventPublisher)
		svc := services.NewCommitmentService(commitments, deals, publisher, logger.NewNop())

		deals.On("GetByID", ctx, "d-1").Return(open, nil).Once()
		commitments.On("CreateWithinLimit", ctx, mock.MatchedBy(func(c *models.Commitment) bool {
			return c.DealID == "d-1" && c.ProfileID == seller.ID && c.Quantity == 2 && c.Status == models.CommitmentStatusPending
		}), 5).Return(nil).Once()
		publisher.On("Publish", services.EventCommitmentCreated, mock.Anything).Return(nil).Once()

		got, err := svc.Commit(ctx, seller, "d-1", services.CommitmentInput{Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, open, got.Deal)

		commitments.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("limit exceeded", func(t *testing.T) {
		commitments := new(MockCommitmentRepository)
		deals := new(MockDealRepository)
		publisher := new(MockEventPublisher)
		svc := services.NewCommitmentService(commitments, deals, publisher, logger.NewNop())

		deals.On("GetByID", ctx, "d-1").Return(open, nil).Once()
		commitments.On("CreateWithinLimit", ctx, mock.Anything, 5).Return(repositories.ErrLimitExceeded).Once()

		_, err := svc.Commit(ctx, seller, "d-1", services.CommitmentInput{Quantity: 6})
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
		publisher.AssertNumberOfCalls(t, "Publish", 0)
	})

	t.Run("deal removed before the commit lands", func(t *testing.T) {
		commitments := new(MockCommitmentRepository)
		deals := new(MockDealRepository)
		publisher := new(MockEventPublisher)
		svc := services.NewCommitmentService(commitments, deals, publisher, logger.NewNop())

		deals.On("GetByID", ctx, "d-1").Return(open, nil).Once()
		commitments.On("CreateWithinLimit", ctx, mock.Anything, 5).Return(fmt.Errorf("deal d-1: %w", repositories.ErrNotFound)).Once()

		_, err := svc.Commit(ctx, seller, "d-1", services.CommitmentInput{Quantity: 1})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
		publisher.AssertNumberOfCalls(t, "Publish", 0)
	})

	t.Run("past deadline", func(t *testing.T) {
		commitments := new(MockCommitmentRepository)
		deals := new(MockDealRepository)
		svc := services.NewCommitmentService(commitments, deals, nil, logger.NewNop())

		past := time.Now().Add(-time.Hour)
		deals.On("GetByID", ctx, "d-2").Return(&models.Deal{ID: "d-2", Status: models.DealStatusActive, Deadline: &past, LimitPerVendor: 5}, nil).Once()

		_, err := svc.Commit(ctx, seller, "d-2", services.CommitmentInput{Quantity: 1})
		assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
		commitments.AssertNumberOfCalls(t, "CreateWithinLimit", 0)
	})

	t.Run("closed deal is hidden", func(t *testing.T) {
		deals := new(MockDealRepository)
		svc := services.NewCommitmentService(new(MockCommitmentRepository), deals, nil, logger.NewNop())

		deals.On("GetByID", ctx, "d-3").Return(&models.Deal{ID: "d-3", Status: models.DealStatusClosed}, nil).Once()

		_, err := svc.Commit(ctx, seller, "d-3", services.CommitmentInput{Quantity: 1})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("admins cannot commit", func(t *testing.T) {
		deals := new(MockDealRepository)
		svc := services.NewCommitmentService(new(MockCommitmentRepository), deals, nil, logger.NewNop())

		_, err := svc.Commit(ctx, adminProfile(), "d-1", services.CommitmentInput{Quantity: 1})
		assert.True(t, apperr.Is(err, apperr.KindForbidden))
		deals.AssertNumberOfCalls(t, "GetByID", 0)
	})
}

func TestCommitmentService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	commitments := new(MockCommitmentRepository)
	svc := services.NewCommitmentService(commitments, new(MockDealRepository), nil, logger.NewNop())
	seller := sellerProfile()

	commitments.On("List", ctx, seller.ID).Return([]models.Commitment{{ID: "c-1"}}, nil).Once()
	commitments.On("List", ctx, "").Return([]models.Commitment{{ID: "c-1"}, {ID: "c-2"}}, nil).Once()
	commitments.On("GetByID", ctx, "c-2").Return(&models.Commitment{ID: "c-2", ProfileID: "seller-2"}, nil)
	commitments.On("GetByID", ctx, "gone").Return(nil, fmt.Errorf("commitment with ID gone: %w", repositories.ErrNotFound))

	mine, err := svc.ListCommitments(ctx, seller)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListCommitments(ctx, adminProfile())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.GetCommitment(ctx, seller, "c-2")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.GetCommitment(ctx, adminProfile(), "gone")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	commitments.AssertExpectations(t)
}
