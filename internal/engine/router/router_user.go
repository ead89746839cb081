package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	userGroup := r.Group("/users", auth)
	{
		userGroup.Get("/me", rt.getMe)
		userGroup.Put("/me", rt.updateMe)
		userGroup.Post("/me/avatar", rt.uploadAvatar)
		userGroup.Get("/search-email", rt.searchEmail)
		userGroup.Get("/check-email", rt.checkEmail)
		userGroup.Get("/landlords", rt.listLandlords)
		userGroup.Get("/landlords/:userId", rt.getLandlord)
	}
}

func (rt *Router) getMe(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	u, err := rt.Services.User.Me(c.UserContext(), ident)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, u)
}

func (rt *Router) updateMe(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.UpdateProfileReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	u, err := rt.Services.User.UpdateProfile(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, u)
}

func (rt *Router) uploadAvatar(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return rt.fail(c, http.NewValidationError("image", "this field is required"))
	}
	u, err := rt.Services.User.UploadAvatar(c.UserContext(), ident, fh)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, u)
}

func (rt *Router) searchEmail(c *fiber.Ctx) error {
	list, err := rt.Services.User.SearchEmail(c.UserContext(), c.Query("q"))
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, fiber.Map{"suggestions": list})
}

func (rt *Router) checkEmail(c *fiber.Ctx) error {
	resp, err := rt.Services.User.CheckEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, resp)
}

func (rt *Router) listLandlords(c *fiber.Ctx) error {
	list, err := rt.Services.User.Landlords(c.UserContext())
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, list)
}

func (rt *Router) getLandlord(c *fiber.Ctx) error {
	d, err := rt.Services.User.Landlord(c.UserContext(), c.Params("userId"))
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, d)
}
