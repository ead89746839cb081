package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) roleRouter(r fiber.Router, auth fiber.Handler) {
	roleGroup := r.Group("/roles", auth)
	{
		roleGroup.Get("/", rt.listRoles)             // GET /roles - admin only
		roleGroup.Get("/me", rt.myRoles)             // GET /roles/me - role names of the caller
		roleGroup.Post("/become", rt.becomeRole)     // POST /roles/become - take host, tenant or landlord
		roleGroup.Post("/relinquish", rt.relinquish) // POST /roles/relinquish - drop an exclusive role
		roleGroup.Post("/assign", rt.assignRole)     // POST /roles/assign - admin only
	}
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Access.EnsureRole(ident, model.RoleAdmin); err != nil {
		return rt.fail(c, err)
	}
	roles, err := rt.Services.Access.ListRoles(c.UserContext())
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, roles)
}

func (rt *Router) myRoles(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, model.RolesResp{Roles: model.RoleStrings(ident.Roles)})
}

func (rt *Router) becomeRole(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.RoleReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	name := model.NormalizeRoleName(req.Role)
	if !name.IsRelinquishable() {
		return rt.fail(c, http.NewValidationError("role", "must be one of: host tenant landlord"))
	}
	if err := rt.Services.Access.AssignExclusiveRole(c.UserContext(), ident.ID, name); err != nil {
		return rt.fail(c, err)
	}
	ident, err = rt.Services.Access.Identity(c.UserContext(), ident.UserId)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, model.RolesResp{Roles: model.RoleStrings(ident.Roles)})
}

func (rt *Router) relinquish(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.RoleReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	roles, err := rt.Services.Access.RelinquishRole(c.UserContext(), ident.ID, req.Role)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, model.RolesResp{Roles: roles})
}

func (rt *Router) assignRole(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Access.EnsureRole(ident, model.RoleAdmin); err != nil {
		return rt.fail(c, err)
	}
	var req model.AssignRoleReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	roles, err := rt.Services.Access.AssignRole(c.UserContext(), req.UserId, req.Role)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, model.RolesResp{Roles: roles})
}
