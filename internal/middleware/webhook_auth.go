package middleware

import (
	"crypto/subtle"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// ValidateClientToken checks the Client-Token header Z-API attaches to
// webhook deliveries against ZAPI_CLIENT_TOKEN. Constant-time compare.
func ValidateClientToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := os.Getenv("ZAPI_CLIENT_TOKEN")
		if expected == "" {
			log.Println("ERROR: ZAPI_CLIENT_TOKEN not set")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server configuration error",
			})
		}

		token := c.Get("Client-Token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing client token",
			})
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid client token",
			})
		}

		return c.Next()
	}
}
