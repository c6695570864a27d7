package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Every API response is wrapped in the same envelope:
// {success, data|errors, message, ...}. Helpers below keep the handlers
// free of map-building noise.

// writeError writes a {success:false, message} envelope.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// writeValidationError writes the aggregated field errors envelope.
func writeValidationError(c *fiber.Ctx, errs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"errors":  errs,
		"message": "Validation failed",
	})
}

// writeData writes a {success:true, message, data} envelope.
func writeData(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler returns a Fiber global error handler that shapes any
// unhandled error into the standard envelope without leaking internals.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "Resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Method not allowed")
		default:
			return writeError(c, status, "Internal server error")
		}
	}
}
