package router

import (
	"errors"

	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/service"
	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/http/middleware"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/ws"
	"github.com/gofiber/fiber/v2"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/2 20:14
 * @file: router_chat.go
 * @description: chat (rest + live socket), vacate and dashboard routes
 */

func (rt *Router) chatRouter(r fiber.Router, auth fiber.Handler) {
	chatGroup := r.Group("/chat", auth)
	{
		chatGroup.Get("/messages", rt.chatHistory)
		chatGroup.Post("/messages", rt.sendChat)
		chatGroup.Post("/messages/:id/read", rt.markChatRead)
		chatGroup.Get("/unread-count", rt.unreadCount)
		chatGroup.Get("/conversations", rt.conversations)
		if rt.Hub != nil {
			chatGroup.Get("/ws", ws.Upgrade, rt.socketUser, ws.Handle(rt.Hub))
		}
	}
}

func (rt *Router) vacateRouter(r fiber.Router, auth fiber.Handler) {
	vacateGroup := r.Group("/vacate-requests", auth)
	{
		vacateGroup.Get("/", rt.listVacate)
		vacateGroup.Post("/", rt.createVacate)
		vacateGroup.Post("/:id/respond", rt.respondVacate)
	}
}

func (rt *Router) dashboardRouter(r fiber.Router, auth fiber.Handler) {
	r.Get("/dashboard/landlord", auth, rt.landlordDashboard)
}

// socketUser hands the authenticated user id to the websocket handler.
func (rt *Router) socketUser(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return rt.fail(c, http.ErrAuthRequired)
	}
	c.Locals(ws.UserLocal, claims.UserId)
	return c.Next()
}

// chatPush forwards stored chat messages to the live sockets of both parties.
func chatPush(hub ws.Hub) event.EventHandler {
	return event.HandlerFunc(func(e event.Event) {
		ce, ok := e.(service.ChatEvent)
		if !ok {
			return
		}
		frame := ws.Envelope{Type: service.EventChatSent, Data: ce.Message}
		for _, userID := range []string{ce.To, ce.From} {
			if _, err := hub.SendToUser(userID, frame); err != nil && !errors.Is(err, ws.ErrNoSubscriber) {
				log.Warnw("chat push failed", "userId", userID, "error", err)
			}
		}
	})
}

func (rt *Router) chatHistory(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var q model.ChatQuery
	if err := http.BindQuery(c, &q); err != nil {
		return rt.fail(c, err)
	}
	list, err := rt.Services.Chat.History(c.UserContext(), ident, &q)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, list)
}

func (rt *Router) sendChat(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.SendChatReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	msg, err := rt.Services.Chat.Send(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, msg)
}

func (rt *Router) markChatRead(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	msg, err := rt.Services.Chat.MarkRead(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, msg)
}

func (rt *Router) unreadCount(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	n, err := rt.Services.Chat.UnreadCount(c.UserContext(), ident)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, fiber.Map{"count": n})
}

func (rt *Router) conversations(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	list, err := rt.Services.Chat.Conversations(c.UserContext(), ident)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, list)
}

func (rt *Router) listVacate(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var page model.Page
	if err := http.BindQuery(c, &page); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Vacate.List(c.UserContext(), ident, &page)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createVacate(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.CreateVacateReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	v, err := rt.Services.Vacate.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, v)
}

func (rt *Router) respondVacate(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.RespondVacateReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	v, err := rt.Services.Vacate.Respond(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, v)
}

func (rt *Router) landlordDashboard(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	d, err := rt.Services.Dashboard.Landlord(c.UserContext(), ident)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, d)
}
