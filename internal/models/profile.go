package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the application role of a Profile.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller
}

// Profile is the application-level user record linked to an external identity.
type Profile struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string     `json:"userId" gorm:"uniqueIndex;type:varchar(36);not null"`
	Email             string     `json:"email" gorm:"type:varchar(255);not null"`
	Name              string     `json:"name" gorm:"type:varchar(255)"`
	Role              Role       `json:"role" gorm:"type:varchar(16);not null"`
	VendorNumber      int        `json:"vendorNumber" gorm:"uniqueIndex;not null"`
	DiscordID         *string    `json:"discordId"`
	DiscordUsername   *string    `json:"discordUsername"`
	DiscordLinkedAt   *time.Time `json:"discordLinkedAt"`
	IsExclusiveMember bool       `json:"isExclusiveMember" gorm:"not null"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// VendorID is the display id derived from the vendor number, e.g. U-00001.
func (p *Profile) VendorID() string {
	return FormatVendorID(p.VendorNumber)
}

// FormatVendorID formats a vendor number as U- followed by at least five digits.
func FormatVendorID(n int) string {
	return fmt.Sprintf("U-%05d", n)
}

// MarshalJSON adds the computed vendorId to the serialized profile.
func (p Profile) MarshalJSON() ([]byte, error) {
	type plain Profile
	return json.Marshal(struct {
		plain
		VendorID string `json:"vendorId"`
	}{plain: plain(p), VendorID: FormatVendorID(p.VendorNumber)})
}
