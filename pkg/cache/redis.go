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

package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/edo/pkg/log"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	// Enabled false keeps everything in the process local fastcache
	Enabled          bool   `mapstructure:"enabled"`
	Mode             string `mapstructure:"mode"`
	Address          string `mapstructure:"address"`
	Password         string `mapstructure:"password"`
	DB               int    `mapstructure:"db"`
	PoolSize         int    `mapstructure:"poolSize"`
	UseTLS           bool   `mapstructure:"useTLS"`
	MasterName       string `mapstructure:"masterName"`
	SentinelUsername string `mapstructure:"sentinelUsername"`
	SentinelPassword string `mapstructure:"sentinelPassword"`
	// 超时时间，单位：秒
	DialTimeout  int `mapstructure:"dialTimeout"`
	ReadTimeout  int `mapstructure:"readTimeout"`
	WriteTimeout int `mapstructure:"writeTimeout"`
	// LocalMaxBytes sizes the in-process L1 cache
	LocalMaxBytes int `mapstructure:"localMaxBytes"`
}

func (r *Redis) SetDefaults() {
	if r.Mode == "" {
		r.Mode = "single"
	}
	if r.Address == "" {
		r.Address = "127.0.0.1:6379"
	}
	if r.PoolSize == 0 {
		r.PoolSize = 20
	}
	if r.DialTimeout == 0 {
		r.DialTimeout = 5
	}
	if r.ReadTimeout == 0 {
		r.ReadTimeout = 3
	}
	if r.WriteTimeout == 0 {
		r.WriteTimeout = 3
	}
	if r.LocalMaxBytes == 0 {
		r.LocalMaxBytes = 32 * 1024 * 1024
	}
}

func NewRedis(cfg Redis) (*redis.Client, error) {
	var tlsConfig *tls.Config
	if cfg.UseTLS {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	var client *redis.Client
	switch cfg.Mode {
	case "single":
		client = redis.NewClient(&redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  time.Duration(cfg.DialTimeout) * time.Second,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
			TLSConfig:    tlsConfig,
		})
	case "sentinel":
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.MasterName,
			SentinelAddrs:    strings.Split(cfg.Address, ","),
			Password:         cfg.Password,
			DB:               cfg.DB,
			PoolSize:         cfg.PoolSize,
			SentinelUsername: cfg.SentinelUsername,
			SentinelPassword: cfg.SentinelPassword,
			DialTimeout:      time.Duration(cfg.DialTimeout) * time.Second,
			ReadTimeout:      time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout:     time.Duration(cfg.WriteTimeout) * time.Second,
			TLSConfig:        tlsConfig,
		})
	default:
		return nil, fmt.Errorf("unsupported redis mode: %q", cfg.Mode)
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Errorw("failed to connect redis", "address", cfg.Address, "error", err)
		return nil, err
	}

	log.Infow("redis connected", "mode", cfg.Mode, "address", cfg.Address)
	return client, nil
}
