package middleware

import (
	"github.com/go-arcade/edo/internal/engine/consts"
	httpx "github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// UnifiedResponseMiddleware 统一响应拦截器
// c.Locals(consts.DETAIL, value) 用于设置响应数据
// c.Locals(consts.OPERATION, "") 表示操作成功但无响应数据
// handler 已写出的错误响应原样返回
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}

		if detail := c.Locals(consts.DETAIL); detail != nil {
			return httpx.WithRepJSON(c, detail)
		}
		if c.Locals(consts.OPERATION) != nil {
			return httpx.WithRepNotDetail(c)
		}
		return nil
	}
}
