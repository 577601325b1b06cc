package handlers

import (
	"vendorhub/internal/access"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type WarehouseHandler struct {
	service  *services.WarehouseService
	validate *validator.Validate
	log      *logger.Logger
}

func NewWarehouseHandler(service *services.WarehouseService, log *logger.Logger) *WarehouseHandler {
	return &WarehouseHandler{service: service, validate: newValidator(), log: log.With("handler", "WarehouseHandler")}
}

func (h *WarehouseHandler) RegisterRoutes(router fiber.Router) {
	warehouseRoutes := router.Group("/warehouses")
	warehouseRoutes.Get("/", h.HandleListWarehouses)
	warehouseRoutes.Post("/", h.HandleCreateWarehouse)
	warehouseRoutes.Patch("/:id", h.HandleUpdateWarehouse)
	warehouseRoutes.Delete("/:id", h.HandleDeleteWarehouse)
}

func (h *WarehouseHandler) HandleListWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.service.ListWarehouses(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, warehouses)
}

func (h *WarehouseHandler) HandleCreateWarehouse(c *fiber.Ctx) error {
	if err := authorize(c, access.ManageWarehouses, "only admins can manage warehouses"); err != nil {
		return respondError(c, h.log, err)
	}
	var in services.WarehouseInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	warehouse, err := h.service.CreateWarehouse(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, warehouse)
}

func (h *WarehouseHandler) HandleUpdateWarehouse(c *fiber.Ctx) error {
	if err := authorize(c, access.ManageWarehouses, "only admins can manage warehouses"); err != nil {
		return respondError(c, h.log, err)
	}
	var patch services.WarehousePatch
	if err := bindJSON(c, h.validate, &patch); err != nil {
		return respondError(c, h.log, err)
	}
	warehouse, err := h.service.UpdateWarehouse(c.UserContext(), actor(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, warehouse)
}

func (h *WarehouseHandler) HandleDeleteWarehouse(c *fiber.Ctx) error {
	if err := h.service.DeleteWarehouse(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
