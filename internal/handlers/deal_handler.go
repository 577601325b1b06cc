package handlers

import (
	"vendorhub/internal/access"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// DealHandler handles HTTP requests for deals.
type DealHandler struct {
	service  *services.DealService
	validate *validator.Validate
	log      *logger.Logger
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(service *services.DealService, log *logger.Logger) *DealHandler {
	return &DealHandler{service: service, validate: newValidator(), log: log.With("handler", "DealHandler")}
}

// RegisterRoutes registers the deal routes.
func (h *DealHandler) RegisterRoutes(router fiber.Router) {
	dealRoutes := router.Group("/deals")
	dealRoutes.Get("/", h.HandleListDeals)
	dealRoutes.Post("/", h.HandleCreateDeal)
	dealRoutes.Get("/:id", h.HandleGetDeal)
	dealRoutes.Patch("/:id", h.HandleUpdateDeal)
	dealRoutes.Delete("/:id", h.HandleDeleteDeal)
}

// HandleListDeals returns every deal to admins and ACTIVE deals to sellers.
func (h *DealHandler) HandleListDeals(c *fiber.Ctx) error {
	deals, err := h.service.ListDeals(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, deals)
}

func (h *DealHandler) HandleGetDeal(c *fiber.Ctx) error {
	deal, err := h.service.GetDeal(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, deal)
}

func (h *DealHandler) HandleCreateDeal(c *fiber.Ctx) error {
	if err := authorize(c, access.WriteDeals, "only admins can create deals"); err != nil {
		return respondError(c, h.log, err)
	}
	var in services.DealInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	deal, err := h.service.CreateDeal(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, deal)
}

// HandleUpdateDeal applies a partial update and returns the stored deal.
func (h *DealHandler) HandleUpdateDeal(c *fiber.Ctx) error {
	if err := authorize(c, access.WriteDeals, "only admins can update deals"); err != nil {
		return respondError(c, h.log, err)
	}
	var patch services.DealPatch
	if err := bindJSON(c, h.validate, &patch); err != nil {
		return respondError(c, h.log, err)
	}
	deal, err := h.service.UpdateDeal(c.UserContext(), actor(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, deal)
}

func (h *DealHandler) HandleDeleteDeal(c *fiber.Ctx) error {
	if err := h.service.DeleteDeal(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
