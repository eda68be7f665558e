package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/noralabs/nora-backend/internal/services"
)

// WebhookHandler handles inbound WhatsApp messages from Z-API
type WebhookHandler struct {
	dialog *services.DialogEngine
	sender services.MessageSender
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(dialog *services.DialogEngine, sender services.MessageSender) *WebhookHandler {
	return &WebhookHandler{
		dialog: dialog,
		sender: sender,
	}
}

// ZAPIWebhookPayload covers both inbound shapes Z-API has used:
// current  {"messages": [{"from": "...", "text": {"body": "..."}}]}
// legacy   {"phone": "...", "text": {"message": "..."}}
type ZAPIWebhookPayload struct {
	Messages []struct {
		From string `json:"from"`
		Text struct {
			Body string `json:"body"`
		} `json:"text"`
	} `json:"messages"`

	Phone string `json:"phone"`
	Text  struct {
		Message string `json:"message"`
	} `json:"text"`
}

// Normalize extracts the (phone, text) pair the dialog engine needs,
// preferring the current format and falling back to the legacy one
func (p *ZAPIWebhookPayload) Normalize() (phone, text string) {
	if len(p.Messages) > 0 {
		phone = p.Messages[0].From
		text = p.Messages[0].Text.Body
	}
	if phone == "" {
		phone = p.Phone
	}
	if text == "" {
		text = p.Text.Message
	}
	return phone, text
}

// HandleWebhook processes one inbound WhatsApp message. The webhook always
// acknowledges receipt: malformed payloads and delivery failures never turn
// into non-2xx responses.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var payload ZAPIWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.JSON(fiber.Map{"ok": false, "motivo": "Payload inválido"})
	}

	phone, text := payload.Normalize()
	if phone == "" || text == "" {
		return c.JSON(fiber.Map{"ok": false, "motivo": "Payload inválido"})
	}

	log.Printf("📱 WhatsApp message from %s: %s", phone, text)

	result, err := h.dialog.HandleMessage(c.Context(), phone, text)
	if err != nil {
		log.Printf("Error processing message from %s: %v", phone, err)
		if sendErr := h.sender.SendWhatsAppMessage(phone, "❌ Desculpe, algo deu errado. Pode tentar novamente?"); sendErr != nil {
			log.Printf("❌ Failed to send error reply to %s: %v", phone, sendErr)
		}
		return c.JSON(fiber.Map{"ok": true})
	}

	if reply := result.DisplayText(); reply != "" {
		if err := h.sender.SendWhatsAppMessage(phone, reply); err != nil {
			log.Printf("❌ Failed to send WhatsApp response to %s: %v", phone, err)
		} else {
			log.Printf("✅ Response sent to %s", phone)
		}
	}

	return c.JSON(fiber.Map{"ok": true})
}

// TestWebhookPayload is the simplified payload for development testing
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook processes test messages without a provider roundtrip
// (for development)
func (h *WebhookHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}

	log.Printf("🧪 Test webhook received from %s: %s", payload.From, payload.Message)

	result, err := h.dialog.HandleMessage(c.Context(), payload.From, payload.Message)
	if err != nil {
		log.Printf("Error processing test message: %v", err)
		return c.JSON(fiber.Map{
			"success":  false,
			"response": "❌ Desculpe, algo deu errado. Pode tentar novamente?",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"kind":     result.Kind,
		"response": result.DisplayText(),
	})
}
