package repositories

import (
	"context"
	"time"

	"vendorhub/internal/models"
)

type InvoiceRepository interface {
	// CreateForCommitment assigns the next invoice sequence and stores the invoice.
	// It returns ErrAlreadyExists when the commitment has been invoiced already.
	CreateForCommitment(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	// ListByProfile returns the profile's invoices newest first, each with its deal's title loaded.
	ListByProfile(ctx context.Context, profileID string) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus, paidAt *time.Time) error
}
