package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) maintenanceRouter(r fiber.Router, auth fiber.Handler) {
	maintenanceGroup := r.Group("/maintenance", auth)
	{
		maintenanceGroup.Get("/", rt.listMaintenance)
		maintenanceGroup.Post("/", rt.createMaintenance)
		maintenanceGroup.Get("/landlord", rt.landlordMaintenance)
		maintenanceGroup.Get("/tenant", rt.tenantMaintenance)
		maintenanceGroup.Get("/:id", rt.getMaintenance)
		maintenanceGroup.Put("/:id", rt.updateMaintenance)
		maintenanceGroup.Delete("/:id", rt.deleteMaintenance)
		maintenanceGroup.Post("/:id/assign", rt.assignMaintenance)
		maintenanceGroup.Put("/:id/status", rt.maintenanceStatus)
		maintenanceGroup.Post("/:id/image", rt.maintenanceImage)
		maintenanceGroup.Get("/:id/messages", rt.maintenanceMessages)
		maintenanceGroup.Post("/:id/messages", rt.postMaintenanceMessage)
	}
}

func (rt *Router) bindMaintenanceQuery(c *fiber.Ctx) (*model.Identity, *model.MaintenanceQuery, error) {
	ident, err := rt.identity(c)
	if err != nil {
		return nil, nil, err
	}
	var q model.MaintenanceQuery
	if err := http.BindQuery(c, &q); err != nil {
		return nil, nil, err
	}
	return ident, &q, nil
}

func (rt *Router) listMaintenance(c *fiber.Ctx) error {
	ident, q, err := rt.bindMaintenanceQuery(c)
	if err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Maintenance.List(c.UserContext(), ident, q)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) landlordMaintenance(c *fiber.Ctx) error {
	ident, q, err := rt.bindMaintenanceQuery(c)
	if err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Maintenance.ListForLandlord(c.UserContext(), ident, q)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) tenantMaintenance(c *fiber.Ctx) error {
	ident, q, err := rt.bindMaintenanceQuery(c)
	if err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Maintenance.ListForTenant(c.UserContext(), ident, q)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createMaintenance(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.CreateMaintenanceReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	m, err := rt.Services.Maintenance.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, m)
}

func (rt *Router) getMaintenance(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	m, err := rt.Services.Maintenance.Get(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, m)
}

func (rt *Router) updateMaintenance(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.UpdateMaintenanceReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	m, err := rt.Services.Maintenance.Update(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, m)
}

func (rt *Router) deleteMaintenance(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Maintenance.Delete(c.UserContext(), ident, id); err != nil {
		return rt.fail(c, err)
	}
	return operation(c)
}

func (rt *Router) assignMaintenance(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.AssignMaintenanceReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	m, err := rt.Services.Maintenance.Assign(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, m)
}

func (rt *Router) maintenanceStatus(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.MaintenanceStatusReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	m, err := rt.Services.Maintenance.UpdateStatus(c.UserContext(), ident, id, req.Status)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, m)
}

func (rt *Router) maintenanceImage(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return rt.fail(c, http.NewValidationError("image", "this field is required"))
	}
	m, err := rt.Services.Maintenance.UploadImage(c.UserContext(), ident, id, fh)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, m)
}

func (rt *Router) maintenanceMessages(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	list, err := rt.Services.Maintenance.Messages(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, list)
}

func (rt *Router) postMaintenanceMessage(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.MaintenanceMessageReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	msg, err := rt.Services.Maintenance.PostMessage(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, msg)
}
