package router

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) paymentRouter(r fiber.Router, auth fiber.Handler) {
	paymentGroup := r.Group("/payments", auth)
	{
		paymentGroup.Get("/", rt.listPayments)
		paymentGroup.Post("/", rt.createPayment)
		paymentGroup.Get("/:id", rt.getPayment)
	}
}

func (rt *Router) noticeRouter(r fiber.Router, auth fiber.Handler) {
	noticeGroup := r.Group("/notices", auth)
	{
		noticeGroup.Get("/", rt.listNotices)
		noticeGroup.Post("/", rt.createNotice)
		noticeGroup.Get("/:id", rt.getNotice)
		noticeGroup.Put("/:id", rt.updateNotice)
		noticeGroup.Delete("/:id", rt.deleteNotice)
	}
}

func (rt *Router) listPayments(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var q model.PaymentQuery
	if err := http.BindQuery(c, &q); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Payment.List(c.UserContext(), ident, &q)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createPayment(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.CreatePaymentReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	p, err := rt.Services.Payment.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, p)
}

func (rt *Router) getPayment(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	p, err := rt.Services.Payment.Get(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, p)
}

func (rt *Router) listNotices(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var page model.Page
	if err := http.BindQuery(c, &page); err != nil {
		return rt.fail(c, err)
	}
	res, err := rt.Services.Notice.List(c.UserContext(), ident, &page)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, res)
}

func (rt *Router) createNotice(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.NoticeReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	n, err := rt.Services.Notice.Create(c.UserContext(), ident, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return created(c, n)
}

func (rt *Router) getNotice(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	n, err := rt.Services.Notice.Get(c.UserContext(), ident, id)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, n)
}

func (rt *Router) updateNotice(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	var req model.NoticeReq
	if err := http.BindJSON(c, &req); err != nil {
		return rt.fail(c, err)
	}
	n, err := rt.Services.Notice.Update(c.UserContext(), ident, id, &req)
	if err != nil {
		return rt.fail(c, err)
	}
	return detail(c, n)
}

func (rt *Router) deleteNotice(c *fiber.Ctx) error {
	ident, err := rt.identity(c)
	if err != nil {
		return rt.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return rt.fail(c, err)
	}
	if err := rt.Services.Notice.Delete(c.UserContext(), ident, id); err != nil {
		return rt.fail(c, err)
	}
	return operation(c)
}
