package middleware

import (
	"github.com/go-arcade/edo/internal/engine/consts"
	"github.com/go-arcade/edo/pkg/id"
	"github.com/gofiber/fiber/v2"
)

const HeaderRequestId = "X-Request-Id"

// RequestMiddleware set request id
func RequestMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestId := c.Get(HeaderRequestId)
		if requestId == "" {
			requestId = id.GetUUID()
		}
		c.Request().Header.Set(HeaderRequestId, requestId)
		c.Set(HeaderRequestId, requestId)
		c.Locals(consts.REQUEST_ID, requestId)
		return c.Next()
	}
}
