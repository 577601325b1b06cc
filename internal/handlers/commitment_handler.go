package handlers

import (
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CommitmentHandler struct {
	service  *services.CommitmentService
	validate *validator.Validate
	log      *logger.Logger
}

func NewCommitmentHandler(service *services.CommitmentService, log *logger.Logger) *CommitmentHandler {
	return &CommitmentHandler{service: service, validate: newValidator(), log: log.With("handler", "CommitmentHandler")}
}

func (h *CommitmentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/deals/:id/commitments", h.HandleCommit)
	router.Get("/commitments", h.HandleListCommitments)
	router.Get("/commitments/:id", h.HandleGetCommitment)
}

func (h *CommitmentHandler) HandleCommit(c *fiber.Ctx) error {
	var in services.CommitmentInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	commitment, err := h.service.Commit(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, commitment)
}

func (h *CommitmentHandler) HandleListCommitments(c *fiber.Ctx) error {
	commitments, err := h.service.ListCommitments(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, commitments)
}

func (h *CommitmentHandler) HandleGetCommitment(c *fiber.Ctx) error {
	commitment, err := h.service.GetCommitment(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, commitment)
}
