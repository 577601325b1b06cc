package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "UNPAID"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
)

// Invoice is generated from a Commitment and belongs to the committing Profile.
type Invoice struct {
	ID           string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Sequence     int             `json:"-" gorm:"uniqueIndex;not null"`
	Number       string          `json:"number" gorm:"uniqueIndex;type:varchar(32);not null"`
	CommitmentID string          `json:"commitmentId" gorm:"uniqueIndex;type:varchar(36);not null"`
	ProfileID    string          `json:"profileId" gorm:"index;type:varchar(36);not null"`
	DealID       string          `json:"dealId" gorm:"index;type:varchar(36);not null"`
	Deal         *Deal           `json:"-" gorm:"foreignKey:DealID"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status       InvoiceStatus   `json:"status" gorm:"type:varchar(16);not null"`
	PaidAt       *time.Time      `json:"paidAt"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func FormatInvoiceNumber(seq int) string {
	return fmt.Sprintf("INV-%06d", seq)
}
