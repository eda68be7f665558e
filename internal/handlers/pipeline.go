package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/noralabs/nora-backend/internal/services"
)

// PipelineHandler exposes the post-questionnaire product funnel, which runs
// independently of the per-message dialog router
type PipelineHandler struct {
	pipeline *services.ProductPipeline
}

// NewPipelineHandler creates a new pipeline handler
func NewPipelineHandler(pipeline *services.ProductPipeline) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// PipelinePayload is the flat Z-API shape the funnel consumes
type PipelinePayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// HandlePipelineWebhook advances a lead through the product funnel
func (h *PipelineHandler) HandlePipelineWebhook(c *fiber.Ctx) error {
	var payload PipelinePayload
	if err := c.BodyParser(&payload); err != nil || payload.Phone == "" {
		return c.JSON(fiber.Map{"ok": false, "motivo": "Payload inválido"})
	}

	if err := h.pipeline.ProcessMessage(c.Context(), payload.Phone, payload.Message); err != nil {
		log.Printf("Pipeline error for %s: %v", payload.Phone, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// FormPayload is the questionnaire webhook body
type FormPayload struct {
	Phone     string                 `json:"phone"`
	Respostas services.FormResponses `json:"respostas"`
}

// HandleFormWebhook records a submitted questionnaire
func (h *PipelineHandler) HandleFormWebhook(c *fiber.Ctx) error {
	var payload FormPayload
	if err := c.BodyParser(&payload); err != nil || payload.Phone == "" {
		return c.JSON(fiber.Map{"ok": false, "motivo": "Payload inválido"})
	}

	if err := h.pipeline.ProcessFormSubmission(payload.Phone, payload.Respostas); err != nil {
		log.Printf("Form processing error for %s: %v", payload.Phone, err)
		return c.JSON(fiber.Map{"ok": false, "motivo": "Falha ao processar formulário"})
	}
	return c.JSON(fiber.Map{"ok": true})
}
