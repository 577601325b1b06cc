package handlers

import (
	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves the caller's own profile and admin profile provisioning.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validator.Validate
	log      *logger.Logger
}

func NewProfileHandler(service *services.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, validate: newValidator(), log: log.With("handler", "ProfileHandler")}
}

func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/profile", h.HandleGetProfile)
	router.Delete("/profile/discord", h.HandleUnlinkDiscord)

	router.Get("/profiles", h.HandleListProfiles)
	router.Post("/profiles", h.HandleProvisionProfile)

	me := router.Group("/users/me")
	me.Patch("/", h.HandleUpdateMe)
	me.Post("/password", h.HandleChangePassword)
}

func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	profile := actor(c)
	if profile == nil {
		return respondError(c, h.log, apperr.Unauthenticated("not authenticated"))
	}
	return respondData(c, fiber.StatusOK, profile)
}

func (h *ProfileHandler) HandleUnlinkDiscord(c *fiber.Ctx) error {
	profile, err := h.service.UnlinkDiscord(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, profile)
}

func (h *ProfileHandler) HandleListProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.ListProfiles(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, profiles)
}

// HandleProvisionProfile creates an identity and profile for a new admin or seller.
func (h *ProfileHandler) HandleProvisionProfile(c *fiber.Ctx) error {
	if err := authorize(c, access.ManageProfiles, "only admins can provision profiles"); err != nil {
		return respondError(c, h.log, err)
	}
	var in services.ProvisionInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	profile, err := h.service.Provision(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info("Provisioned profile", "profileId", profile.ID, "vendorId", profile.VendorID(), "role", profile.Role)
	return respondData(c, fiber.StatusCreated, profile)
}

func (h *ProfileHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var in services.UpdateMeInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	profile, err := h.service.UpdateMe(c.UserContext(), actor(c), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, profile)
}

func (h *ProfileHandler) HandleChangePassword(c *fiber.Ctx) error {
	var in services.ChangePasswordInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.service.ChangePassword(c.UserContext(), actor(c), in); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
