package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/noralabs/nora-backend/database"
	"github.com/noralabs/nora-backend/internal/jobs"
	"github.com/noralabs/nora-backend/internal/models"
	"github.com/noralabs/nora-backend/internal/routes"
	"github.com/noralabs/nora-backend/internal/services"
	"github.com/noralabs/nora-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found - checking environment variables")
	}

	ctx := context.Background()

	// Initialize storage
	var store storage.Store

	// Check if we should use memory store (for testing)
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		// Connect to database
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		// Run migrations
		log.Println("🔄 Running database migrations...")
		if err := database.DB.AutoMigrate(
			&models.Lead{},
			&models.Appointment{},
		); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}
	storage.SetStore(store)

	// Redis-backed conversation sessions
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis not reachable at %s: %v", redisAddr, err)
	} else {
		log.Printf("✅ Redis connected at %s", redisAddr)
	}
	sessions := services.NewSessionStore(redisClient)

	// Outbound WhatsApp provider
	var sender services.MessageSender
	switch os.Getenv("WHATSAPP_PROVIDER") {
	case "twilio":
		twilioService, err := services.NewTwilioService()
		if err != nil {
			log.Printf("⚠️  Twilio not configured: %v", err)
			sender = services.LogSender{}
		} else {
			log.Println("✅ Twilio sender initialized")
			sender = twilioService
		}
	default:
		zapiService, err := services.NewZAPIService()
		if err != nil {
			log.Printf("⚠️  Z-API not configured: %v", err)
			sender = services.LogSender{}
		} else {
			log.Println("✅ Z-API sender initialized")
			sender = zapiService
		}
	}

	// Generative model
	var llm services.LLMClient
	if os.Getenv("MOCK_LLM") == "1" || os.Getenv("GEMINI_API_KEY") == "" {
		log.Println("⚠️  Using mock LLM client (set GEMINI_API_KEY for real replies)")
		llm = services.MockLLMClient{}
	} else {
		gemini, err := services.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatal("Failed to initialize Gemini client:", err)
		}
		log.Println("✅ Gemini client initialized")
		llm = gemini
	}

	// Initialize all services
	calendar := services.NewSlotCalendar()
	payments := services.NewPaymentService(store, sender)
	booking := services.NewBookingService(store, calendar, payments)
	dialog := services.NewDialogEngine(sessions, booking, llm)
	pipeline := services.NewProductPipeline(store, llm, sender)

	// Start payment reminder job
	reminderJob := jobs.NewReminderJob(payments)
	reminderJob.Start()

	log.Println("✅ All services initialized and scheduled jobs started")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "NORA Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check endpoint with store and calendar status
	app.Get("/", func(c *fiber.Ctx) error {
		response := fiber.Map{
			"service":     "NORA Backend API",
			"version":     "1.0.0",
			"status":      "healthy",
			"environment": getEnvironment(),
			"storage":     getStorageType(),
		}

		if leads, err := store.GetAllLeads(); err == nil {
			response["leads"] = len(leads)
		}

		openSlots := fiber.Map{}
		for _, date := range calendar.Dates() {
			openSlots[date] = calendar.Remaining(date)
		}
		response["calendar"] = openSlots
		response["sessions"] = sessions.ActiveSessions(c.Context())

		return c.JSON(response)
	})

	// Health check endpoint for monitoring
	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		statusCode := 200

		if os.Getenv("USE_MEMORY_STORE") != "true" && database.DB != nil {
			sqlDB, err := database.DB.DB()
			if err != nil || sqlDB.Ping() != nil {
				status = "unhealthy"
				statusCode = 503
			}
		}

		redisHealthy := redisClient.Ping(c.Context()).Err() == nil

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"services": fiber.Map{
				"database": status == "healthy",
				"redis":    redisHealthy,
			},
		})
	})

	// Setup routes
	routes.SetupRoutes(app, store, dialog, pipeline, sender)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping reminder job...")
		reminderJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 NORA Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", getStorageType())
	log.Printf("🌍 Environment: %s", getEnvironment())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func getEnvironment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	return "development"
}

func getStorageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}
