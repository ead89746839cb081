package router

import (
	"github.com/go-arcade/edo/internal/engine/service"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/metrics"
	"github.com/go-arcade/edo/pkg/shutdown"
	"github.com/go-arcade/edo/pkg/ws"
	"github.com/google/wire"
)

// ProviderSet 提供路由相关的依赖
var ProviderSet = wire.NewSet(ProvideRouter, ProvideChatHub)

// ProvideRouter 提供路由实例
func ProvideRouter(
	httpConf *http.Http,
	services *service.Services,
	tokens cache.ICache,
	httpMetrics *metrics.HTTPMetrics,
	registry *metrics.Server,
	shutdownMgr *shutdown.Manager,
	hub ws.Hub,
) *Router {
	return NewRouter(httpConf, services, tokens, httpMetrics, registry, shutdownMgr, hub)
}

// ProvideChatHub 提供聊天推送的连接管理器, 并订阅聊天事件
func ProvideChatHub(bus *event.EventBus) ws.Hub {
	hub := ws.NewHub()
	bus.RegisterHandler(service.EventChatSent, chatPush(hub))
	return hub
}
