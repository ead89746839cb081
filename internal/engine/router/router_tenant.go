package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) tenantRouter(r fiber.Router, auth fiber.Handler) {
	tenantGroup := r.Group("/tenants", auth)
	{
		tenantGroup.Get("/", rt.listTenants)
		tenantGroup.Post("/", rt.createTenant)
		// registered before /:id so "rentals" is not parsed as an id
		tenantGroup.Get("/rentals", rt.rentals)
		tenantGroup.Get("/:id", rt.getTenant)
		tenantGroup.Put("/:id", rt.updateTenant)
		tenantGroup.Delete("/:id", rt.deleteTenant)
	}
}

func (rt *Router) listTenants(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var page model.Page
	if err := http.BindQuery(c, &page); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Tenant.List(c.UserContext(), ident, &page)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createTenant(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.CreateTenantReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	t, err := rt.Services.Tenant.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, t)
}

func (rt *Router) rentals(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	list, err := rt.Services.Tenant.Rentals(c.UserContext(), ident)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, list)
}

func (rt *Router) getTenant(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	t, err := rt.Services.Tenant.Get(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, t)
}

func (rt *Router) updateTenant(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.UpdateTenantReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	t, err := rt.Services.Tenant.Update(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, t)
}

func (rt *Router) deleteTenant(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Tenant.Delete(c.UserContext(), ident, id); err != nil {
		return rt.fail(c, err)
	}
	return operation(c)
}
