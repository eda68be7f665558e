package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noralabs/nora-backend/internal/storage"
)

// LeadHandler exposes thin CRUD over the lead store
type LeadHandler struct {
	store storage.Store
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(store storage.Store) *LeadHandler {
	return &LeadHandler{store: store}
}

// GetLead returns a lead by phone number
func (h *LeadHandler) GetLead(c *fiber.Ctx) error {
	phone := c.Params("phone")
	lead, err := h.store.GetLeadByPhone(phone)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "lead not found",
		})
	}
	return c.JSON(lead)
}

// CreateLeadRequest is the body for lead creation
type CreateLeadRequest struct {
	Phone string `json:"phone"`
}

// CreateLead registers a new lead with default fields
func (h *LeadHandler) CreateLead(c *fiber.Ctx) error {
	var req CreateLeadRequest
	if err := c.BodyParser(&req); err != nil || req.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "phone is required",
		})
	}

	lead, err := h.store.CreateLead(req.Phone)
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(lead)
}

// GetAppointments lists a lead's appointments
func (h *LeadHandler) GetAppointments(c *fiber.Ctx) error {
	phone := c.Params("phone")
	appts, err := h.store.GetAppointmentsByPhone(phone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(appts)
}
