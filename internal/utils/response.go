package utils

import "github.com/gofiber/fiber/v2"

// JSONError writes the API error shape: {"error": "..."}.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func JSON(c *fiber.Ctx, status int, payload interface{}) error {
	return c.Status(status).JSON(payload)
}
