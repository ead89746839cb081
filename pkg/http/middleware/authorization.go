package middleware

import (
	"errors"
	"strings"

	"github.com/go-arcade/edo/internal/engine/consts"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/http/jwt"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
)

// AuthorizationMiddleware 认证中间件
// auth: JWT 配置, 包含密钥与 token 缓存前缀
// tokens: token 缓存, 为 nil 时只校验签名
// This function is used as the middleware of fiber.
func AuthorizationMiddleware(auth http.Auth, tokens cache.ICache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get(fiber.HeaderAuthorization)
		// browsers cannot set headers on a websocket handshake
		if aToken == "" && websocket.IsWebSocketUpgrade(c) && c.Query("token") != "" {
			aToken = "Bearer " + c.Query("token")
		}
		if aToken == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") || parts[1] == "" {
			return http.WithRepErrMsg(c, http.AuthorizationIncorrect.Code, http.AuthorizationIncorrect.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], auth.SecretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Debugw("parse token failed", "path", c.Path(), "error", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		// 注销或重新登录后, 缓存中的 token 会被删除或替换
		if tokens != nil {
			stored, err := tokens.Get(c.UserContext(), auth.RedisKeyPrefix+claims.UserId).Result()
			if err != nil {
				if errors.Is(err, cache.ErrCacheMiss) {
					return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
				}
				log.Errorw("load token from cache failed", "userId", claims.UserId, "error", err)
				return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
			}
			if stored != parts[1] {
				return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
			}
		}

		c.Locals(consts.CLAIMS, claims)
		return c.Next()
	}
}

// Claims returns the claims stored by AuthorizationMiddleware.
func Claims(c *fiber.Ctx) (*jwt.AuthClaims, bool) {
	claims, ok := c.Locals(consts.CLAIMS).(*jwt.AuthClaims)
	return claims, ok && claims != nil
}
