package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/logger"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})

	t.Run("should replace oversized or malformed request id", func(t *testing.T) {
		for _, bad := range []string{
			strings.Repeat("a", MaxRequestIDLength+1),
			"id with spaces",
			"<script>alert(1)</script>",
			"x\"y",
		} {
			req := httptest.NewRequest("GET", "/test", nil)
			req.Header.Set(RequestIDHeader, bad)

			resp, _ := app.Test(req)

			got := resp.Header.Get(RequestIDHeader)
			assert.NotEqual(t, bad, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "replacement should be a fresh uuid")
		}
	})

	t.Run("should accept id at the length limit", func(t *testing.T) {
		id := strings.Repeat("b", MaxRequestIDLength)
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, id)

		resp, _ := app.Test(req)

		assert.Equal(t, id, resp.Header.Get(RequestIDHeader))
	})
}

func TestRequestIDFrom(t *testing.T) {
	app := fiber.New()
	app.Get("/bare", func(c *fiber.Ctx) error {
		return c.SendString("[" + RequestIDFrom(c) + "]")
	})

	resp, _ := app.Test(httptest.NewRequest("GET", "/bare", nil))
	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	assert.Equal(t, "[]", buf.String())
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(Logger(logger.NewJSON(&buf, zapcore.InfoLevel)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	tests := []struct {
		path   string
		status int
		level  string
	}{
		{"/test", fiber.StatusAccepted, "info"},
		{"/missing", fiber.StatusNotFound, "warn"},
		{"/boom", fiber.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf.Reset()
			req := httptest.NewRequest("GET", tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			logData := lines[0]

			assert.Equal(t, "http_request", logData["msg"])
			assert.Equal(t, tt.level, logData["level"])
			assert.Equal(t, resp.Header.Get(RequestIDHeader), logData["request_id"])
			assert.Equal(t, "GET", logData["method"])
			assert.Equal(t, tt.path, logData["path"])
			assert.Equal(t, float64(tt.status), logData["status"])
			assert.NotNil(t, logData["latency_ms"])
			assert.NotEmpty(t, logData["ts"])
		})
	}
}
