package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/http/middleware"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/service"
)

// Messages returned to clients. They never carry internal error text.
const (
	msgNotFound    = "Archivo no encontrado"
	msgRenderError = "No se pudo generar el documento"
	msgIOError     = "Error al acceder a los archivos generados"
	msgInternal    = "Error interno del servidor"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_BODY", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		Success:   false,
		Error:     message,
		Code:      code,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// writeServiceError maps a service failure kind onto a status code and envelope.
// Validation messages name the offending field and are safe to echo.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch service.KindOf(err) {
	case service.KindValidation:
		msg := "invalid request"
		var se *service.Error
		if errors.As(err, &se) && se.Err != nil {
			msg = se.Err.Error()
		}
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
	case service.KindNotFound:
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", msgNotFound)
	case service.KindRender:
		return writeError(c, fiber.StatusInternalServerError, "RENDER_ERROR", msgRenderError)
	case service.KindIO:
		return writeError(c, fiber.StatusInternalServerError, "IO_ERROR", msgIOError)
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", msgInternal)
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "BODY_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", msgInternal)
		}
	}
}
