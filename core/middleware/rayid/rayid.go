// Package rayid assigns a unique ray id to every request for log correlation.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalsKey is the Fiber locals key the ray id is stored under.
const LocalsKey = "ray_id"

// HeaderName is the response header carrying the ray id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that generates a ray id per request. An inbound
// X-Ray-Id header is honored so upstream proxies can thread their own ids.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

// Logger returns the given logger with the request's ray_id field attached.
func Logger(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals(LocalsKey).(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
