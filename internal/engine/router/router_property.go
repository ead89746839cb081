package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) propertyRouter(r fiber.Router, auth fiber.Handler) {
	propertyGroup := r.Group("/properties", auth)
	{
		propertyGroup.Get("/", rt.listProperties)
		propertyGroup.Post("/", rt.createProperty)
		propertyGroup.Get("/:id", rt.getProperty)
		propertyGroup.Put("/:id", rt.updateProperty)
		propertyGroup.Delete("/:id", rt.deleteProperty)
		propertyGroup.Get("/:id/units", rt.listPropertyUnits)
	}
}

func (rt *Router) unitRouter(r fiber.Router, auth fiber.Handler) {
	unitGroup := r.Group("/units", auth)
	{
		unitGroup.Get("/", rt.listUnits)
		unitGroup.Post("/", rt.createUnit)
		unitGroup.Get("/:id", rt.getUnit)
		unitGroup.Put("/:id", rt.updateUnit)
		unitGroup.Delete("/:id", rt.deleteUnit)
	}
}

func (rt *Router) listProperties(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var page model.Page
	if err := http.BindQuery(c, &page); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Property.List(c.UserContext(), ident, &page)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createProperty(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.PropertyReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	p, err := rt.Services.Property.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, p)
}

func (rt *Router) getProperty(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	p, err := rt.Services.Property.Get(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, p)
}

func (rt *Router) updateProperty(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.PropertyReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	p, err := rt.Services.Property.Update(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, p)
}

func (rt *Router) deleteProperty(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Property.Delete(c.UserContext(), ident, id); err != nil {
		return rt.fail(c, err)
	}
	return operation(c)
}

func (rt *Router) listPropertyUnits(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var page model.Page
	if err := http.BindQuery(c, &page); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Property.Units(c.UserContext(), ident, id, &page)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) listUnits(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var q repo.UnitQuery
	if err := http.BindQuery(c, &q); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Unit.List(c.UserContext(), ident, &q)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createUnit(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.CreateUnitReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	u, err := rt.Services.Unit.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, u)
}

func (rt *Router) getUnit(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	u, err := rt.Services.Unit.Get(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, u)
}

func (rt *Router) updateUnit(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.UpdateUnitReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	u, err := rt.Services.Unit.Update(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, u)
}

func (rt *Router) deleteUnit(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Unit.Delete(c.UserContext(), ident, id); err != nil {
		return rt.fail(c, err)
	}
	return operation(c)
}
