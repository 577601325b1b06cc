// Package access is the role gate shared by every handler.
package access

import "vendorhub/internal/models"

// Action is an operation subject to role checks.
type Action string

const (
	ReadDeals        Action = "deals:read"
	WriteDeals       Action = "deals:write"
	CommitToDeals    Action = "deals:commit"
	RequestLabels    Action = "labels:request"
	ProcessLabels    Action = "labels:process"
	UploadLabels     Action = "labels:upload"
	ManageWarehouses Action = "warehouses:manage"
	ManageProfiles   Action = "profiles:manage"
	ManageInvoices   Action = "invoices:manage"
	ReadFiles        Action = "files:read"
)

var grants = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ReadDeals:        true,
		WriteDeals:       true,
		ProcessLabels:    true,
		UploadLabels:     true,
		ManageWarehouses: true,
		ManageProfiles:   true,
		ManageInvoices:   true,
		ReadFiles:        true,
	},
	models.RoleSeller: {
		ReadDeals:     true,
		CommitToDeals: true,
		RequestLabels: true,
		ReadFiles:     true,
	},
}

// IsAuthorized reports whether profile may perform action. A nil profile is never authorized.
func IsAuthorized(profile *models.Profile, action Action) bool {
	if profile == nil {
		return false
	}
	return grants[profile.Role][action]
}

// CanViewDeal reports whether profile may see deal: admins see every deal, everyone else only ACTIVE ones.
func CanViewDeal(profile *models.Profile, deal *models.Deal) bool {
	if !IsAuthorized(profile, ReadDeals) || deal == nil {
		return false
	}
	return profile.IsAdmin() || deal.Status == models.DealStatusActive
}

// CanAccessOwned reports whether profile may act on a record owned by ownerProfileID.
func CanAccessOwned(profile *models.Profile, ownerProfileID string) bool {
	if profile == nil {
		return false
	}
	return profile.IsAdmin() || profile.ID == ownerProfileID
}
