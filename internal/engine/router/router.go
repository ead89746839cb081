package router

import (
	"errors"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/edo/internal/engine/consts"
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/internal/engine/service"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/http/middleware"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/metrics"
	"github.com/go-arcade/edo/pkg/shutdown"
	"github.com/go-arcade/edo/pkg/trace/inject"
	"github.com/go-arcade/edo/pkg/version"
	"github.com/go-arcade/edo/pkg/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:48
 * @file: router.go
 * @description: setup router
 *  		     api router, use by web and mobile clients
 */

const apiPrefix = "/api/v1"

type Router struct {
	Http     *http.Http
	Services *service.Services
	Tokens   cache.ICache
	Metrics  *metrics.HTTPMetrics
	Registry *metrics.Server
	Shutdown *shutdown.Manager
	Hub      ws.Hub
}

func NewRouter(
	httpConf *http.Http,
	services *service.Services,
	tokens cache.ICache,
	httpMetrics *metrics.HTTPMetrics,
	registry *metrics.Server,
	shutdownMgr *shutdown.Manager,
	hub ws.Hub,
) *Router {
	return &Router{
		Http:     httpConf,
		Services: services,
		Tokens:   tokens,
		Metrics:  httpMetrics,
		Registry: registry,
		Shutdown: shutdownMgr,
		Hub:      hub,
	}
}

func (rt *Router) Router() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Edo",
		DisableStartupMessage: true,
		ReadTimeout:           time.Duration(rt.Http.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(rt.Http.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(rt.Http.IdleTimeout) * time.Second,
		BodyLimit:             rt.Http.BodyLimit * 1024 * 1024,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          rt.errorHandler,
	})

	if rt.Http.AccessLog {
		app.Use(http.AccessLogFormat())
	}

	app.Use(
		middleware.ExceptionMiddleware,
		middleware.CorsMiddleware(rt.Http.AllowOrigin),
		middleware.RequestMiddleware(),
		inject.FiberMiddleware(),
	)
	if rt.Metrics != nil {
		app.Use(rt.Metrics.FiberMiddleware())
	}
	app.Use(middleware.UnifiedResponseMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
		}
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	if rt.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Registry.Handler()))
	}

	rt.routerGroup(app.Group(apiPrefix))

	// 找不到路径时的处理 - 必须在所有路由注册之后
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrMsg(c, http.RouteNotFound.Code, http.RouteNotFound.Msg, c.Path())
	})

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth, rt.Tokens)

	rt.authRouter(r, auth)
	rt.userRouter(r, auth)
	rt.roleRouter(r, auth)
	rt.propertyRouter(r, auth)
	rt.unitRouter(r, auth)
	rt.tenantRouter(r, auth)
	rt.invitationRouter(r, auth)
	rt.maintenanceRouter(r, auth)
	rt.paymentRouter(r, auth)
	rt.noticeRouter(r, auth)
	rt.chatRouter(r, auth)
	rt.vacateRouter(r, auth)
	rt.dashboardRouter(r, auth)
}

// errorHandler answers errors fiber raises itself, e.g. an oversized body.
func (rt *Router) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusRequestEntityTooLarge:
			return http.WithRepErrMsg(c, http.PayloadTooLarge.Code, http.PayloadTooLarge.Msg, c.Path())
		case fiber.StatusNotFound:
			return http.WithRepErrMsg(c, http.RouteNotFound.Code, http.RouteNotFound.Msg, c.Path())
		case fiber.StatusMethodNotAllowed, fiber.StatusBadRequest:
			return http.WithRepErrMsg(c, http.BadRequest.Code, fe.Message, c.Path())
		}
		if fe.Code < fiber.StatusInternalServerError {
			return c.Status(fe.Code).JSON(http.ResponseErr{ErrCode: http.BadRequest.Code, ErrMsg: fe.Message, Path: c.Path()})
		}
	}
	return rt.fail(c, err)
}

// fail writes err as a coded error response. Anything that is not a coded
// error is logged and answered with a generic message.
func (rt *Router) fail(c *fiber.Ctx, err error) error {
	if e, ok := http.AsError(err); ok {
		if e.Kind == http.InternalError {
			log.Errorw("request failed", "path", c.Path(), "method", c.Method(), "error", err)
		}
		return http.WithRepError(c, e)
	}
	log.Errorw("request failed",
		"path", c.Path(),
		"method", c.Method(),
		"requestId", c.Locals(consts.REQUEST_ID),
		"error", err,
	)
	return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
}

// identity resolves the caller set by the authorization middleware.
func (rt *Router) identity(c *fiber.Ctx) (*model.Identity, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil, http.ErrAuthRequired
	}
	return rt.Services.Access.Identity(c.UserContext(), claims.UserId)
}

func paramID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, http.NewValidationError(name, "must be a positive integer")
	}
	return id, nil
}

func detail(c *fiber.Ctx, v any) error {
	c.Locals(consts.DETAIL, v)
	return nil
}

func created(c *fiber.Ctx, v any) error {
	c.Status(fiber.StatusCreated)
	c.Locals(consts.DETAIL, v)
	return nil
}

func operation(c *fiber.Ctx) error {
	c.Locals(consts.OPERATION, "")
	return nil
}
