package services

import (
	"context"
	"errors"
	"time"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"

	"github.com/shopspring/decimal"
)

type InvoiceStatusInput struct {
	Status models.InvoiceStatus `json:"status" validate:"required,oneof=UNPAID PAID"`
}

type InvoiceService struct {
	invoices    repositories.InvoiceRepository
	commitments repositories.CommitmentRepository
	now         func() time.Time
}

func NewInvoiceService(invoices repositories.InvoiceRepository, commitments repositories.CommitmentRepository) *InvoiceService {
	return &InvoiceService{invoices: invoices, commitments: commitments, now: time.Now}
}

// ListMyInvoices returns the actor's invoices, newest first.
func (s *InvoiceService) ListMyInvoices(ctx context.Context, actor *models.Profile) ([]models.Invoice, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("not authenticated")
	}
	invoices, err := s.invoices.ListByProfile(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal("failed to list invoices", err)
	}
	return invoices, nil
}

// GenerateInvoice bills a commitment at the deal's payout times the committed quantity.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, actor *models.Profile, commitmentID string) (*models.Invoice, error) {
	if !access.IsAuthorized(actor, access.ManageInvoices) {
		return nil, apperr.Forbidden("only admins can generate invoices")
	}
	commitment, err := s.commitments.GetByID(ctx, commitmentID)
	if err != nil {
		return nil, mapRepoError(err, "commitment not found", "failed to load commitment")
	}
	if commitment.Status == models.CommitmentStatusCancelled {
		return nil, apperr.InvalidInput("cannot invoice a cancelled commitment", nil)
	}
	if commitment.Deal == nil {
		return nil, apperr.Internal("commitment has no deal", nil)
	}

	invoice := &models.Invoice{
		CommitmentID: commitment.ID,
		ProfileID:    commitment.ProfileID,
		DealID:       commitment.DealID,
		Amount:       commitment.Deal.Payout.Mul(decimal.NewFromInt(int64(commitment.Quantity))),
		Status:       models.InvoiceStatusUnpaid,
	}
	if err := s.invoices.CreateForCommitment(ctx, invoice); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperr.Conflict("commitment already invoiced")
		}
		return nil, apperr.Internal("failed to create invoice", err)
	}
	invoice.Deal = commitment.Deal
	return invoice, nil
}

// SetInvoiceStatus marks an invoice paid (stamping paidAt) or unpaid (clearing it).
func (s *InvoiceService) SetInvoiceStatus(ctx context.Context, actor *models.Profile, id string, in InvoiceStatusInput) (*models.Invoice, error) {
	if !access.IsAuthorized(actor, access.ManageInvoices) {
		return nil, apperr.Forbidden("only admins can update invoices")
	}
	var paidAt *time.Time
	if in.Status == models.InvoiceStatusPaid {
		now := s.now()
		paidAt = &now
	}
	if err := s.invoices.UpdateStatus(ctx, id, in.Status, paidAt); err != nil {
		return nil, mapRepoError(err, "invoice not found", "failed to update invoice")
	}
	invoice, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "invoice not found", "failed to reload invoice")
	}
	return invoice, nil
}
