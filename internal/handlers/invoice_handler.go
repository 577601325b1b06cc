package handlers

import (
	"vendorhub/internal/access"
	"vendorhub/internal/models"
	"vendorhub/internal/services"
	"vendorhub/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type InvoiceHandler struct {
	service  *services.InvoiceService
	validate *validator.Validate
	log      *logger.Logger
}

func NewInvoiceHandler(service *services.InvoiceService, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, validate: newValidator(), log: log.With("handler", "InvoiceHandler")}
}

func (h *InvoiceHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/invoices", h.HandleListInvoices)
	router.Patch("/invoices/:id", h.HandleSetInvoiceStatus)
	router.Post("/commitments/:id/invoice", h.HandleGenerateInvoice)
}

type invoiceDeal struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// invoiceResponse nests only the deal's id and title.
type invoiceResponse struct {
	models.Invoice
	Deal *invoiceDeal `json:"deal,omitempty"`
}

func toInvoiceResponse(inv models.Invoice) invoiceResponse {
	resp := invoiceResponse{Invoice: inv}
	if inv.Deal != nil {
		resp.Deal = &invoiceDeal{ID: inv.Deal.ID, Title: inv.Deal.Title}
	}
	return resp
}

// HandleListInvoices returns the caller's invoices, newest first.
func (h *InvoiceHandler) HandleListInvoices(c *fiber.Ctx) error {
	invoices, err := h.service.ListMyInvoices(c.UserContext(), actor(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toInvoiceResponse(inv))
	}
	return respondData(c, fiber.StatusOK, resp)
}

func (h *InvoiceHandler) HandleGenerateInvoice(c *fiber.Ctx) error {
	invoice, err := h.service.GenerateInvoice(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info("Generated invoice", "invoice", invoice.Number, "commitmentId", invoice.CommitmentID, "amount", invoice.Amount.StringFixed(2))
	return respondData(c, fiber.StatusCreated, toInvoiceResponse(*invoice))
}

func (h *InvoiceHandler) HandleSetInvoiceStatus(c *fiber.Ctx) error {
	if err := authorize(c, access.ManageInvoices, "only admins can update invoices"); err != nil {
		return respondError(c, h.log, err)
	}
	var in services.InvoiceStatusInput
	if err := bindJSON(c, h.validate, &in); err != nil {
		return respondError(c, h.log, err)
	}
	invoice, err := h.service.SetInvoiceStatus(c.UserContext(), actor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, toInvoiceResponse(*invoice))
}
