// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"time"

	"github.com/go-arcade/edo/internal/engine/service"
	"github.com/go-arcade/edo/internal/pkg/notify"
	"github.com/go-arcade/edo/internal/pkg/storage"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/metrics"
	"github.com/go-arcade/edo/pkg/pprof"
	"github.com/go-arcade/edo/pkg/trace"
	"github.com/google/wire"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideAuthConfig,
	ProvideLogConfig,
	ProvideDatabaseConfig,
	ProvideRedisConfig,
	ProvideStorageConfig,
	ProvideNotifyConfig,
	ProvideTraceConfig,
	ProvideMetricsConfig,
	ProvidePprofConfig,
	ProvideInvitationOptions,
)

// ProvideConf 提供应用配置
func ProvideConf(configPath string) *AppConfig {
	return NewConf(configPath)
}

// ProvideHttpConfig 提供 HTTP 配置
func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	httpConfig := &appConf.Http
	httpConfig.SetDefaults()
	return httpConfig
}

// ProvideAuthConfig 提供 JWT 配置
func ProvideAuthConfig(httpConf *http.Http) http.Auth {
	return httpConf.Auth
}

// ProvideLogConfig 提供日志配置
func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

// ProvideDatabaseConfig 提供数据库配置
func ProvideDatabaseConfig(appConf *AppConfig) database.Database {
	return appConf.Database
}

// ProvideRedisConfig 提供 Redis 配置
func ProvideRedisConfig(appConf *AppConfig) cache.Redis {
	return appConf.Redis
}

// ProvideStorageConfig 提供对象存储配置
func ProvideStorageConfig(appConf *AppConfig) storage.Storage {
	return appConf.Storage
}

// ProvideNotifyConfig 提供通知配置
func ProvideNotifyConfig(appConf *AppConfig) notify.Conf {
	return appConf.Notify
}

// ProvideTraceConfig 提供链路追踪配置
func ProvideTraceConfig(appConf *AppConfig) trace.Conf {
	return appConf.Trace
}

// ProvideMetricsConfig 提供 Metrics 配置
func ProvideMetricsConfig(appConf *AppConfig) metrics.MetricsConfig {
	metricsConfig := appConf.Metrics
	metricsConfig.SetDefaults()
	return metricsConfig
}

// ProvidePprofConfig 提供 Pprof 配置
func ProvidePprofConfig(appConf *AppConfig) pprof.PprofConfig {
	pprofConfig := appConf.Pprof
	pprofConfig.SetDefaults()
	return pprofConfig
}

// ProvideInvitationOptions 提供邀请有效期与前端地址
func ProvideInvitationOptions(appConf *AppConfig) service.InvitationOptions {
	return service.InvitationOptions{
		TTL:         time.Duration(appConf.Invitation.TTLHours) * time.Hour,
		FrontendURL: appConf.Notify.FrontendURL,
	}
}
