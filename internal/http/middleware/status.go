package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusOf returns the status the client will see. Errors returned down the chain are
// rendered by the app's ErrorHandler after every middleware has run, so the response
// code is not final yet when one is present.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
