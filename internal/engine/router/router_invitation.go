package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) invitationRouter(r fiber.Router, auth fiber.Handler) {
	// code routes are public and must be registered ahead of the authenticated group
	r.Get("/invitations/code/:code", rt.getInvitationByCode)
	r.Post("/invitations/code/:code/accept", rt.acceptInvitation)

	invitationGroup := r.Group("/invitations", auth)
	{
		invitationGroup.Get("/", rt.listInvitations)
		invitationGroup.Post("/", rt.createInvitation)
		invitationGroup.Post("/:id/cancel", rt.cancelInvitation)
	}
}

func (rt *Router) listInvitations(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var q model.InvitationQuery
	if err := http.BindQuery(c, &q); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Invitation.List(c.UserContext(), ident, &q)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createInvitation(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.CreateInvitationReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	resp, err := rt.Services.Invitation.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, resp)
}

func (rt *Router) cancelInvitation(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	inv, err := rt.Services.Invitation.Cancel(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, inv)
}

func (rt *Router) getInvitationByCode(c *fiber.Ctx) error {
	view, err := rt.Services.Invitation.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, view)
}

func (rt *Router) acceptInvitation(c *fiber.Ctx) error {
	var req model.AcceptInvitationReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	resp, err := rt.Services.Invitation.Accept(c.UserContext(), c.Params("code"), &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, resp)
}
