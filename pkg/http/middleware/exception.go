package middleware

import (
	"runtime/debug"

	"github.com/go-arcade/edo/internal/engine/consts"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware 异常中间件
// 捕获 panic, 记录堆栈, 只向调用方返回通用错误信息
// This function is used as the middleware of fiber.
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic recovered",
				"path", c.Path(),
				"method", c.Method(),
				"requestId", c.Locals(consts.REQUEST_ID),
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
	}()

	return c.Next()
}
