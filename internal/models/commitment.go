package models

import "time"

type CommitmentStatus string

const (
	CommitmentStatusPending   CommitmentStatus = "PENDING"
	CommitmentStatusDelivered CommitmentStatus = "DELIVERED"
	CommitmentStatusCancelled CommitmentStatus = "CANCELLED"
)

// Commitment is a vendor's claim against a Deal's available quantity.
type Commitment struct {
	ID        string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	DealID    string           `json:"dealId" gorm:"index;type:varchar(36);not null"`
	Deal      *Deal            `json:"deal,omitempty" gorm:"foreignKey:DealID"`
	ProfileID string           `json:"profileId" gorm:"index;type:varchar(36);not null"`
	Quantity  int              `json:"quantity" gorm:"not null"`
	Status    CommitmentStatus `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
