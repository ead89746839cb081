package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/10/4 10:47
 * @file: router_auth.go
 * @description: auth router
 */

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.Post("/register", rt.register)
		authGroup.Post("/login", rt.login)
		authGroup.Post("/refresh", rt.refresh)

		authGroup.Post("/logout", auth, rt.logout)
	}
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.Register
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	user, err := rt.Services.Auth.Register(c.UserContext(), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, user)
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.Login
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	resp, err := rt.Services.Auth.Login(c.UserContext(), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, resp)
}

func (rt *Router) refresh(c *fiber.Ctx) error {
	var req model.RefreshReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	resp, err := rt.Services.Auth.Refresh(c.UserContext(), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, resp)
}

func (rt *Router) logout(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Auth.Logout(c.UserContext(), ident.UserId); err != nil {
		return rt.fail(c, err)
	}
	return operation(c)
}
