package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/orbithq/orbit-server/internal/types"
)

// ErrorResponse sends the uniform error envelope: {"error": <message>}
func ErrorResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// APIErrorResponse renders a service-layer error. Unknown errors become a
// generic 500 so storage details never reach the caller.
func APIErrorResponse(c *fiber.Ctx, err error) error {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		return ErrorResponse(c, apiErr.Message, apiErr.Code)
	}
	return ErrorResponse(c, "Internal server error", fiber.StatusInternalServerError)
}

// SuccessResponse sends {"success": true} plus any extra fields.
func SuccessResponse(c *fiber.Ctx, status int, extra fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// MethodNotAllowedResponse sends a 405 for a matched path with the wrong verb.
func MethodNotAllowedResponse(c *fiber.Ctx) error {
	return ErrorResponse(c, "Method not allowed", fiber.StatusMethodNotAllowed)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound)
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Error string `json:"error"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Success bool `json:"success"`
}
