package requestlogger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/mint-authority/common/errs"
	"github.com/gaze-network/mint-authority/pkg/errorhandler"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorhandler.NewHTTPErrorHandler()})
	app.Use(New(Config{WithRequestHeader: true, HiddenRequestHeaders: []string{"Authorization"}}))
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return errs.WithPublicMessageCode(errors.Wrap(errs.NotFound, "record not found"), "", "NOT_FOUND")
	})

	testCases := []struct {
		path     string
		expected int
	}{
		{"/ok", http.StatusOK},
		{"/missing", http.StatusNotFound},
		{"/unknown", http.StatusNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			req.Header.Set("Authorization", "secret")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, resp.StatusCode)
		})
	}
}
