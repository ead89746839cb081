//go:build wireinject
// +build wireinject

package main

import (
	"github.com/go-arcade/edo/internal/engine/bootstrap"
	"github.com/go-arcade/edo/internal/engine/config"
	"github.com/go-arcade/edo/internal/engine/repo"
	"github.com/go-arcade/edo/internal/engine/router"
	"github.com/go-arcade/edo/internal/engine/service"
	"github.com/go-arcade/edo/internal/pkg/notify"
	"github.com/go-arcade/edo/internal/pkg/storage"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/metrics"
	"github.com/go-arcade/edo/pkg/pprof"
	"github.com/go-arcade/edo/pkg/shutdown"
	"github.com/go-arcade/edo/pkg/trace"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 基础设施
		log.ProviderSet,
		trace.ProviderSet,
		database.ProviderSet,
		cache.ProviderSet,
		event.ProviderSet,
		notify.ProviderSet,
		storage.ProviderSet,
		metrics.ProviderSet,
		pprof.ProviderSet,
		shutdown.ProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
