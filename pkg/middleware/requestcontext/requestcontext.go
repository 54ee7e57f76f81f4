// Package requestcontext attaches per-request values to the fiber user context.
package requestcontext

import (
	"context"

	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

type (
	requestIDKey struct{}
	clientIPKey  struct{}
)

// New stores the request id and client ip in the user context and its logger.
// The client ip is resolved by fiber, see fiber.Config.ProxyHeader and TrustedProxies.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		if id == "" {
			id = c.Get(requestid.ConfigDefault.Header, fiberutils.UUID())
			c.Set(requestid.ConfigDefault.Header, id)
			c.Locals(requestid.ConfigDefault.ContextKey, id)
		}
		ip := c.IP()

		ctx := context.WithValue(c.UserContext(), requestIDKey{}, id)
		ctx = context.WithValue(ctx, clientIPKey{}, ip)
		ctx = logger.WithContext(ctx, "requestId", id)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// GetRequestID returns the request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// GetClientIP returns the client ip, or "" outside a request.
func GetClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
