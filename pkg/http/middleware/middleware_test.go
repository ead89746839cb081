// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/edo/internal/engine/consts"
	"github.com/go-arcade/edo/pkg/cache"
	httpx "github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/http/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(body, out))
}

func TestRequestMiddleware_WithExistingRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		assert.Equal(t, "existing-request-id-12345", c.Get(HeaderRequestId))
		assert.Equal(t, "existing-request-id-12345", c.Locals(consts.REQUEST_ID))
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestId, "existing-request-id-12345")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "existing-request-id-12345", resp.Header.Get(HeaderRequestId))
}

func TestRequestMiddleware_UniqueUUIDs(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
		require.NoError(t, err)

		requestId := resp.Header.Get(HeaderRequestId)
		_, err = uuid.Parse(requestId)
		require.NoError(t, err, "X-Request-Id should be a valid UUID, got %q", requestId)

		_, dup := seen[requestId]
		assert.False(t, dup, "duplicate request id %s", requestId)
		seen[requestId] = struct{}{}
	}
}

func TestUnifiedResponseMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(UnifiedResponseMiddleware())
	app.Get("/detail", func(c *fiber.Ctx) error {
		c.Locals(consts.DETAIL, fiber.Map{"name": "edo"})
		return nil
	})
	app.Post("/created", func(c *fiber.Ctx) error {
		c.Status(fiber.StatusCreated)
		c.Locals(consts.DETAIL, fiber.Map{"id": 1})
		return nil
	})
	app.Delete("/op", func(c *fiber.Ctx) error {
		c.Locals(consts.OPERATION, "")
		return nil
	})
	app.Get("/failed", func(c *fiber.Ctx) error {
		return httpx.WithRepErrMsg(c, httpx.Conflict.Code, "unit is occupied", c.Path())
	})

	t.Run("detail", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/detail", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Code   int            `json:"code"`
			Detail map[string]any `json:"detail"`
		}
		decode(t, resp, &body)
		assert.Equal(t, httpx.Success.Code, body.Code)
		assert.Equal(t, "edo", body.Detail["name"])
	})

	t.Run("status preserved", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/created", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})

	t.Run("operation", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/op", nil))
		require.NoError(t, err)

		var body httpx.Response
		decode(t, resp, &body)
		assert.Equal(t, httpx.Success.Code, body.Code)
		assert.Nil(t, body.Detail)
	})

	t.Run("error passthrough", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/failed", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var body httpx.ResponseErr
		decode(t, resp, &body)
		assert.Equal(t, httpx.Conflict.Code, body.ErrCode)
		assert.Equal(t, "unit is occupied", body.ErrMsg)
	})
}

func TestExceptionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ExceptionMiddleware)
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("database password leaked in panic")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body httpx.ResponseErr
	decode(t, resp, &body)
	assert.Equal(t, httpx.InternalError.Code, body.ErrCode)
	assert.Equal(t, httpx.InternalError.Msg, body.ErrMsg)
}

func TestCorsMiddleware_Credentials(t *testing.T) {
	tests := []struct {
		name            string
		allowOrigins    string
		wantCredentials string
	}{
		{name: "wildcard", allowOrigins: "*", wantCredentials: ""},
		{name: "explicit origin", allowOrigins: "https://app.example.com", wantCredentials: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(CorsMiddleware(tt.allowOrigins))
			app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Origin", "https://app.example.com")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCredentials, resp.Header.Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestAuthorizationMiddleware(t *testing.T) {
	auth := httpx.Auth{
		SecretKey:      "test-secret",
		AccessExpire:   time.Hour,
		RefreshExpire:  time.Hour,
		RedisKeyPrefix: "edo:token:",
	}
	tokens := cache.NewFastCache(1 << 20)

	pair, err := jwt.GenToken("user-1", []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	require.NoError(t, err)
	require.NoError(t, tokens.Set(context.Background(), auth.RedisKeyPrefix+"user-1", pair.AccessToken, time.Hour).Err())

	stale, err := jwt.GenToken("user-1", []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	require.NoError(t, err)
	orphan, err := jwt.GenToken("user-2", []byte(auth.SecretKey), auth.AccessExpire, auth.RefreshExpire)
	require.NoError(t, err)
	expired, err := jwt.GenToken("user-1", []byte(auth.SecretKey), -time.Minute, auth.RefreshExpire)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(AuthorizationMiddleware(auth, tokens))
	app.Get("/me", func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		require.True(t, ok)
		return c.SendString(claims.UserId)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   int
	}{
		{name: "missing header", header: "", wantStatus: fiber.StatusUnauthorized, wantCode: httpx.TokenBeEmpty.Code},
		{name: "wrong scheme", header: "Basic abc", wantStatus: fiber.StatusUnauthorized, wantCode: httpx.AuthorizationIncorrect.Code},
		{name: "garbage token", header: "Bearer abc", wantStatus: fiber.StatusUnauthorized, wantCode: httpx.InvalidToken.Code},
		{name: "expired", header: "Bearer " + expired.AccessToken, wantStatus: fiber.StatusUnauthorized, wantCode: httpx.TokenExpired.Code},
		{name: "logged out", header: "Bearer " + orphan.AccessToken, wantStatus: fiber.StatusUnauthorized, wantCode: httpx.TokenExpired.Code},
		{name: "replaced by newer login", header: "Bearer " + stale.AccessToken, wantStatus: fiber.StatusUnauthorized, wantCode: httpx.InvalidToken.Code},
		{name: "refresh token rejected", header: "Bearer " + pair.RefreshToken, wantStatus: fiber.StatusUnauthorized, wantCode: httpx.InvalidToken.Code},
		{name: "valid", header: "Bearer " + pair.AccessToken, wantStatus: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantCode != 0 {
				var body httpx.ResponseErr
				decode(t, resp, &body)
				assert.Equal(t, tt.wantCode, body.ErrCode)
			}
		})
	}
}
