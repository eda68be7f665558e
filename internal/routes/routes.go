package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/noralabs/nora-backend/internal/handlers"
	"github.com/noralabs/nora-backend/internal/middleware"
	"github.com/noralabs/nora-backend/internal/services"
	"github.com/noralabs/nora-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, dialog *services.DialogEngine, pipeline *services.ProductPipeline, sender services.MessageSender) {
	webhookHandler := handlers.NewWebhookHandler(dialog, sender)
	pipelineHandler := handlers.NewPipelineHandler(pipeline)
	leadHandler := handlers.NewLeadHandler(store)

	// API routes
	api := app.Group("/api")

	leads := api.Group("/leads")
	leads.Post("/", leadHandler.CreateLead)
	leads.Get("/:phone", leadHandler.GetLead)
	leads.Get("/:phone/appointments", leadHandler.GetAppointments)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// Z-API webhook - token validation is skipped in development
	if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		webhooks.Post("/zapi", webhookHandler.HandleWebhook)
		webhooks.Post("/pipeline", pipelineHandler.HandlePipelineWebhook)
		webhooks.Post("/forms", pipelineHandler.HandleFormWebhook)
		if os.Getenv("ENVIRONMENT") == "development" {
			println("⚠️  Webhook token validation DISABLED for development")
		}
	} else {
		webhooks.Post("/zapi", middleware.ValidateClientToken(), webhookHandler.HandleWebhook)
		webhooks.Post("/pipeline", middleware.ValidateClientToken(), pipelineHandler.HandlePipelineWebhook)
		webhooks.Post("/forms", middleware.ValidateClientToken(), pipelineHandler.HandleFormWebhook)
	}

	// ========== TEST ROUTES (Development Only) ==========
	app.Post("/test/whatsapp", webhookHandler.HandleTestWebhook)
}
