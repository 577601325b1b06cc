package handlers

import (
	"strings"

	"vendorhub/internal/access"
	"vendorhub/internal/apperr"
	"vendorhub/internal/models"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// LabelHandler handles label requests and admin label uploads.
type LabelHandler struct {
	labels   *services.LabelService
	files    *services.FileService
	validate *validator.Validate
	log      *logger.Logger
}

func NewLabelHandler(labels *services.LabelService, files *services.FileService, log *logger.Logger) *LabelHandler {
	return &LabelHandler{labels: labels, files: files, validate: newValidator(), log: log.With("handler", "LabelHandler")}
}

func (h *LabelHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/commitments/:id/labels", h.HandleRequestLabel)

	labelRoutes := router.Group("/labels")
	labelRoutes.Get("/", h.HandleListLabels)
	labelRoutes.Get("/:id", h.HandleGetLabel)
	labelRoutes.Patch("/:id", h.HandleProcessLabel)
	labelRoutes.Post("/:id/file", h.HandleUploadLabelFile)
}

func (h *LabelHandler) HandleRequestLabel(c *fiber.Ctx) error {
	var in services.LabelRequestInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	request, err := h.labels.RequestLabel(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, request)
}

// HandleListLabels lists label requests, optionally filtered with ?status=.
func (h *LabelHandler) HandleListLabels(c *fiber.Ctx) error {
	status := models.LabelStatus(strings.ToUpper(c.Query("status")))
	if status != "" && status != models.LabelStatusPending && !status.IsTerminal() {
		return respondError(c, h.log, apperr.InvalidInput("invalid status filter", map[string]string{"status": "must be PENDING, PROCESSED or REJECTED"}))
	}
	requests, err := h.labels.ListLabelRequests(c.UserContext(), actor(c), status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, requests)
}

func (h *LabelHandler) HandleGetLabel(c *fiber.Ctx) error {
	request, err := h.labels.GetLabelRequest(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, request)
}

// HandleProcessLabel moves a label request to PROCESSED or REJECTED. Admin only.
func (h *LabelHandler) HandleProcessLabel(c *fiber.Ctx) error {
	if err := authorize(c, access.ProcessLabels, "only admins can process label requests"); err != nil {
		return respondError(c, h.log, err)
	}
	var in services.ProcessLabelInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	request, err := h.labels.ProcessLabelRequest(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info("Processed label request", "labelRequestId", request.ID, "status", request.Status, "processedById", request.ProcessedByID)
	return respondData(c, fiber.StatusOK, request)
}

// HandleUploadLabelFile stores the multipart "file" field as the label for a request.
func (h *LabelHandler) HandleUploadLabelFile(c *fiber.Ctx) error {
	if err := authorize(c, access.UploadLabels, "only admins can upload labels"); err != nil {
		return respondError(c, h.log, err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.log, apperr.InvalidInput("missing file", map[string]string{"file": "required"}))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, h.log, apperr.Internal("failed to read uploaded file", err))
	}
	defer file.Close()

	uploaded, err := h.files.UploadLabelFile(c.UserContext(), actor(c), c.Params("id"), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, uploaded)
}
