package services

import (
	"context"
	"errors"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/repositories"
)

type WarehouseInput struct {
	Code            string `json:"code" validate:"required,alphanum,min=2,max=32"`
	Name            string `json:"name" validate:"required,max=255"`
	Address         string `json:"address" validate:"omitempty,max=1000"`
	AcceptsDropOff  bool   `json:"acceptsDropOff"`
	AcceptsShipping bool   `json:"acceptsShipping"`
	IsActive        *bool  `json:"isActive"`
}

type WarehousePatch struct {
	Code            *string `json:"code" validate:"omitempty,alphanum,min=2,max=32"`
	Name            *string `json:"name" validate:"omitempty,max=255"`
	Address         *string `json:"address" validate:"omitempty,max=1000"`
	AcceptsDropOff  *bool   `json:"acceptsDropOff"`
	AcceptsShipping *bool   `json:"acceptsShipping"`
	IsActive        *bool   `json:"isActive"`
}

type WarehouseService struct {
	repo repositories.WarehouseRepository
}

func NewWarehouseService(repo repositories.WarehouseRepository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

// ListWarehouses returns all warehouses to admins and only active ones to everyone else.
func (s *WarehouseService) ListWarehouses(ctx context.Context, actor *models.Profile) ([]models.Warehouse, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("not authenticated")
	}
	warehouses, err := s.repo.List(ctx, !access.IsAuthorized(actor, access.ManageWarehouses))
	if err != nil {
		return nil, apperr.Internal("failed to list warehouses", err)
	}
	return warehouses, nil
}

func (s *WarehouseService) CreateWarehouse(ctx context.Context, actor *models.Profile, in WarehouseInput) (*models.Warehouse, error) {
	if !access.IsAuthorized(actor, access.ManageWarehouses) {
		return nil, apperr.Forbidden("only admins can manage warehouses")
	}
	warehouse := &models.Warehouse{
		Code:            in.Code,
		Name:            in.Name,
		Address:         in.Address,
		AcceptsDropOff:  in.AcceptsDropOff,
		AcceptsShipping: in.AcceptsShipping,
		IsActive:        in.IsActive == nil || *in.IsActive,
	}
	if err := s.repo.Create(ctx, warehouse); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperr.Conflict("warehouse code already exists")
		}
		return nil, apperr.Internal("failed to create warehouse", err)
	}
	return warehouse, nil
}

func (s *WarehouseService) UpdateWarehouse(ctx context.Context, actor *models.Profile, id string, patch WarehousePatch) (*models.Warehouse, error) {
	if !access.IsAuthorized(actor, access.ManageWarehouses) {
		return nil, apperr.Forbidden("only admins can manage warehouses")
	}
	warehouse, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, "warehouse not found", "failed to load warehouse")
	}
	if patch.Code != nil {
		warehouse.Code = *patch.Code
	}
	if patch.Name != nil {
		warehouse.Name = *patch.Name
	}
	if patch.Address != nil {
		warehouse.Address = *patch.Address
	}
	if patch.AcceptsDropOff != nil {
		warehouse.AcceptsDropOff = *patch.AcceptsDropOff
	}
	if patch.AcceptsShipping != nil {
		warehouse.AcceptsShipping = *patch.AcceptsShipping
	}
	if patch.IsActive != nil {
		warehouse.IsActive = *patch.IsActive
	}
	if err := s.repo.Update(ctx, warehouse); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, apperr.Conflict("warehouse code already exists")
		}
		return nil, apperr.Internal("failed to update warehouse", err)
	}
	return warehouse, nil
}

func (s *WarehouseService) DeleteWarehouse(ctx context.Context, actor *models.Profile, id string) error {
	if !access.IsAuthorized(actor, access.ManageWarehouses) {
		return apperr.Forbidden("only admins can manage warehouses")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, "warehouse not found", "failed to delete warehouse")
	}
	return nil
}
