package models

import "time"

type Warehouse struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code            string    `json:"code" gorm:"uniqueIndex;type:varchar(32);not null"`
	Name            string    `json:"name" gorm:"type:varchar(255);not null"`
	Address         string    `json:"address" gorm:"type:text"`
	AcceptsDropOff  bool      `json:"acceptsDropOff" gorm:"not null"`
	AcceptsShipping bool      `json:"acceptsShipping" gorm:"not null"`
	IsActive        bool      `json:"isActive" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
