package repositories

import (
	"context"
	"fmt"
	"time"

	"vendorhub/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GORMInvoiceRepository struct {
	db *gorm.DB
}

func NewGORMInvoiceRepository(db *gorm.DB) *GORMInvoiceRepository {
	return &GORMInvoiceRepository{db: db}
}

func (r *GORMInvoiceRepository) CreateForCommitment(ctx context.Context, invoice *models.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Invoice{}).Where("commitment_id = ?", invoice.CommitmentID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}
		var last int
		if err := tx.Model(&models.Invoice{}).Select("COALESCE(MAX(sequence), 0)").Scan(&last).Error; err != nil {
			return err
		}
		invoice.Sequence = last + 1
		invoice.Number = models.FormatInvoiceNumber(invoice.Sequence)
		return tx.Create(invoice).Error
	})
	if err != nil {
		return translate(err, "failed to create invoice for commitment %s", invoice.CommitmentID)
	}
	return nil
}

func (r *GORMInvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).Preload("Deal", selectDealTitle).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, translate(err, "invoice with ID %s", id)
	}
	return &invoice, nil
}

func (r *GORMInvoiceRepository) ListByProfile(ctx context.Context, profileID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Deal", selectDealTitle).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for profile %s: %w", profileID, err)
	}
	return invoices, nil
}

func (r *GORMInvoiceRepository) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus, paidAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  status,
		"paid_at": paidAt,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to update invoice %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("invoice with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

func selectDealTitle(db *gorm.DB) *gorm.DB {
	return db.Select("id", "title")
}
