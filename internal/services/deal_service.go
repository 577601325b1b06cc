package services

import (
	"context"
	"encoding/json"
	"time"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DealInput is the body of a deal creation request.
type DealInput struct {
	Title          string            `json:"title" validate:"required,min=3,max=255"`
	Description    string            `json:"description" validate:"omitempty,max=5000"`
	RetailPrice    decimal.Decimal   `json:"retailPrice"`
	Payout         decimal.Decimal   `json:"payout"`
	Status         models.DealStatus `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED CLOSED"`
	Deadline       *time.Time        `json:"deadline"`
	LimitPerVendor int               `json:"limitPerVendor" validate:"required,min=1"`
	Links          map[string]string `json:"links" validate:"omitempty,dive,url"`
}

// DealPatch is the body of a deal update request. Nil fields are left unchanged.
type DealPatch struct {
	Title          *string            `json:"title" validate:"omitempty,min=3,max=255"`
	Description    *string            `json:"description" validate:"omitempty,max=5000"`
	RetailPrice    *decimal.Decimal   `json:"retailPrice"`
	Payout         *decimal.Decimal   `json:"payout"`
	Status         *models.DealStatus `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED CLOSED"`
	Deadline       *time.Time         `json:"deadline"`
	ClearDeadline  bool               `json:"clearDeadline"`
	LimitPerVendor *int               `json:"limitPerVendor" validate:"omitempty,min=1"`
	Links          map[string]string  `json:"links" validate:"omitempty,dive,url"`
}

// DealService handles business logic related to deals.
type DealService struct {
	repo repositories.DealRepository
}

func NewDealService(repo repositories.DealRepository) *DealService {
	return &DealService{repo: repo}
}

// ListDeals returns every deal to admins and only ACTIVE deals to everyone else.
func (s *DealService) ListDeals(ctx context.Context, actor *models.Profile) ([]models.Deal, error) {
	if !access.IsAuthorized(actor, access.ReadDeals) {
		return nil, apperr.Forbidden("not allowed to read deals")
	}
	filter := repositories.DealFilter{}
	if !actor.IsAdmin() {
		active := models.DealStatusActive
		filter.Status = &active
	}
	deals, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to list deals", err)
	}
	return deals, nil
}

// GetDeal returns the deal, or NotFound when it is missing or hidden from the actor.
func (s *DealService) GetDeal(ctx context.Context, actor *models.Profile, id string) (*models.Deal, error) {
	deal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "deal not found", "failed to load deal")
	}
	if !access.CanViewDeal(actor, deal) {
		return nil, apperr.NotFound("deal not found")
	}
	return deal, nil
}

func (s *DealService) CreateDeal(ctx context.Context, actor *models.Profile, in DealInput) (*models.Deal, error) {
	if !access.IsAuthorized(actor, access.WriteDeals) {
		return nil, apperr.Forbidden("only admins can create deals")
	}
	if err := checkPrices(in.RetailPrice, in.Payout); err != nil {
		return nil, err
	}
	links, err := encodeLinks(in.Links)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.DealStatusActive
	}
	deal := &models.Deal{
		Title:          in.Title,
		Description:    in.Description,
		RetailPrice:    in.RetailPrice,
		Payout:         in.Payout,
		Status:         status,
		Deadline:       in.Deadline,
		LimitPerVendor: in.LimitPerVendor,
		Links:          links,
	}
	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, apperr.Internal("failed to create deal", err)
	}
	return deal, nil
}

// UpdateDeal applies the patch and returns the stored deal.
func (s *DealService) UpdateDeal(ctx context.Context, actor *models.Profile, id string, patch DealPatch) (*models.Deal, error) {
	if !access.IsAuthorized(actor, access.WriteDeals) {
		return nil, apperr.Forbidden("only admins can update deals")
	}
	deal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "deal not found", "failed to load deal")
	}

	if patch.Title != nil {
		deal.Title = *patch.Title
	}
	if patch.Description != nil {
		deal.Description = *patch.Description
	}
	if patch.RetailPrice != nil {
		deal.RetailPrice = *patch.RetailPrice
	}
	if patch.Payout != nil {
		deal.Payout = *patch.Payout
	}
	if patch.Status != nil {
		deal.Status = *patch.Status
	}
	if patch.ClearDeadline {
		deal.Deadline = nil
	} else if patch.Deadline != nil {
		deal.Deadline = patch.Deadline
	}
	if patch.LimitPerVendor != nil {
		deal.LimitPerVendor = *patch.LimitPerVendor
	}
	if patch.Links != nil {
		if deal.Links, err = encodeLinks(patch.Links); err != nil {
			return nil, err
		}
	}
	if err := checkPrices(deal.RetailPrice, deal.Payout); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, apperr.Internal("failed to update deal", err)
	}
	updated, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "deal not found", "failed to reload deal")
	}
	return updated, nil
}

func (s *DealService) DeleteDeal(ctx context.Context, actor *models.Profile, id string) error {
	if !access.IsAuthorized(actor, access.WriteDeals) {
		return apperr.Forbidden("only admins can delete deals")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isInUse(err) {
			return apperr.Conflict("deal has commitments and cannot be deleted")
		}
		return mapRepoError(err, "deal not found", "failed to delete deal")
	}
	return nil
}

func checkPrices(retailPrice, payout decimal.Decimal) error {
	details := map[string]string{}
	if !retailPrice.IsPositive() {
		details["retailPrice"] = "must be greater than 0"
	}
	if payout.IsNegative() {
		details["payout"] = "must not be negative"
	}
	if len(details) > 0 {
		return apperr.InvalidInput("invalid prices", details)
	}
	return nil
}

func encodeLinks(links map[string]string) (datatypes.JSON, error) {
	if len(links) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, apperr.InvalidInput("invalid links", map[string]string{"links": err.Error()})
	}
	return datatypes.JSON(raw), nil
}
