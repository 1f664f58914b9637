package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the correlation id in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the id lives in fiber locals.
	RequestIDLocalKey = "request_id"
	// MaxRequestIDLength bounds client-supplied ids echoed into headers, logs and error bodies.
	MaxRequestIDLength = 64
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// RequestID tags every request with a correlation id.
//
// A client X-Request-ID is reused only when it is at most MaxRequestIDLength bytes of
// [A-Za-z0-9._:-]; anything else is replaced by a fresh UUID. The id is stored in locals
// and echoed on the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}
		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// RequestIDFrom returns the id stored by RequestID, or "" when the middleware did not run.
func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(RequestIDLocalKey).(string)
	return id
}

func validRequestID(id string) bool {
	return id != "" && len(id) <= MaxRequestIDLength && requestIDPattern.MatchString(id)
}
