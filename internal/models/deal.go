package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DealStatus string

const (
	DealStatusActive  DealStatus = "ACTIVE"
	DealStatusExpired DealStatus = "EXPIRED"
	DealStatusClosed  DealStatus = "CLOSED"
)

func (s DealStatus) Valid() bool {
	switch s {
	case DealStatusActive, DealStatusExpired, DealStatusClosed:
		return true
	}
	return false
}

// PriceType classifies a deal's payout against its retail price.
type PriceType string

const (
	PriceTypeBelowCost   PriceType = "BELOW_COST"
	PriceTypeRetail      PriceType = "RETAIL"
	PriceTypeAboveRetail PriceType = "ABOVE_RETAIL"
)

// ClassifyPrice returns RETAIL when payout equals retail, ABOVE_RETAIL when payout exceeds it,
// and BELOW_COST otherwise.
func ClassifyPrice(retailPrice, payout decimal.Decimal) PriceType {
	switch payout.Cmp(retailPrice) {
	case 0:
		return PriceTypeRetail
	case 1:
		return PriceTypeAboveRetail
	default:
		return PriceTypeBelowCost
	}
}

// Deal is an offer vendors can commit inventory against.
type Deal struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title          string          `json:"title" gorm:"type:varchar(255);not null"`
	Description    string          `json:"description" gorm:"type:text"`
	RetailPrice    decimal.Decimal `json:"retailPrice" gorm:"type:numeric(12,2);not null"`
	Payout         decimal.Decimal `json:"payout" gorm:"type:numeric(12,2);not null"`
	PriceType      PriceType       `json:"priceType" gorm:"type:varchar(16);not null"`
	Status         DealStatus      `json:"status" gorm:"type:varchar(16);index;not null"`
	Deadline       *time.Time      `json:"deadline"`
	LimitPerVendor int             `json:"limitPerVendor" gorm:"not null"`
	// Links maps marketplace name to listing URL.
	Links     datatypes.JSON `json:"links"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// BeforeSave keeps PriceType derived from the current prices.
func (d *Deal) BeforeSave(tx *gorm.DB) error {
	d.PriceType = ClassifyPrice(d.RetailPrice, d.Payout)
	return nil
}

// IsOpenAt reports whether the deal accepts commitments at t.
func (d *Deal) IsOpenAt(t time.Time) bool {
	if d.Status != DealStatusActive {
		return false
	}
	return d.Deadline == nil || t.Before(*d.Deadline)
}
