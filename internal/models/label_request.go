package models

import "time"

type LabelStatus string

const (
	LabelStatusPending   LabelStatus = "PENDING"
	LabelStatusProcessed LabelStatus = "PROCESSED"
	LabelStatusRejected  LabelStatus = "REJECTED"
)

// IsTerminal reports whether s is a status a label request can be processed into.
func (s LabelStatus) IsTerminal() bool {
	return s == LabelStatusProcessed || s == LabelStatusRejected
}

// LabelRequest is a request for a shipping label tied to a Commitment.
type LabelRequest struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CommitmentID  string      `json:"commitmentId" gorm:"index;type:varchar(36);not null"`
	Commitment    *Commitment `json:"commitment,omitempty" gorm:"foreignKey:CommitmentID"`
	ProfileID     string      `json:"profileId" gorm:"index;type:varchar(36);not null"`
	WarehouseID   *string     `json:"warehouseId" gorm:"type:varchar(36)"`
	Quantity      int         `json:"quantity" gorm:"not null"`
	Status        LabelStatus `json:"status" gorm:"type:varchar(16);index;not null"`
	LabelURL      *string     `json:"labelUrl"`
	Notes         *string     `json:"notes"`
	ProcessedAt   *time.Time  `json:"processedAt"`
	ProcessedByID *string     `json:"processedById" gorm:"type:varchar(36)"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}
