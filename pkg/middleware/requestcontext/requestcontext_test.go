package requestcontext

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := fiber.New(fiber.Config{ProxyHeader: fiber.HeaderXForwardedFor})
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c.UserContext()) + " " + GetClientIP(c.UserContext()))
	})

	testCases := []struct {
		name      string
		requestID string
		forwarded string
		expected  string
	}{
		{"forwarded client", "req-1", "203.0.113.7", "req-1 203.0.113.7"},
		{"forwarded chain", "req-2", "198.51.100.1", "req-2 198.51.100.1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.Header.Set(requestid.ConfigDefault.Header, tc.requestID)
			req.Header.Set(fiber.HeaderXForwardedFor, tc.forwarded)
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(body))
			assert.Equal(t, tc.requestID, resp.Header.Get(requestid.ConfigDefault.Header))
		})
	}
}

func TestGenerateRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(GetRequestID(c.UserContext()))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, body)
	assert.Equal(t, string(body), resp.Header.Get(requestid.ConfigDefault.Header))
}
