package handlers

import (
	"fmt"

	"vendorhub/internal/apperr"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// FileHandler relays stored objects to authenticated clients.
type FileHandler struct {
	service *services.FileService
	log     *logger.Logger
}

func NewFileHandler(service *services.FileService, log *logger.Logger) *FileHandler {
	return &FileHandler{service: service, log: log.With("handler", "FileHandler")}
}

func (h *FileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/files/:bucket/*", h.HandleGetFile)
}

// HandleGetFile streams bucket/path inline. Unknown buckets and objects get an empty 404.
func (h *FileHandler) HandleGetFile(c *fiber.Ctx) error {
	file, err := h.service.OpenFile(c.UserContext(), actor(c), c.Params("bucket"), c.Params("*"))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			c.Status(fiber.StatusNotFound)
			return nil
		}
		return respondError(c, h.log, err)
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", file.Filename))
	return c.SendStream(file.Body, int(file.Size))
}
