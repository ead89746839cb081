package http

import (
	"fmt"
	"time"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:38
 * @file: http.go
 * @description: http server configuration
 */

type Http struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	AccessLog       bool   `mapstructure:"accessLog"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	IdleTimeout     int    `mapstructure:"idleTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	// BodyLimit 单位 MB
	BodyLimit   int    `mapstructure:"bodyLimit"`
	AllowOrigin string `mapstructure:"allowOrigin"`
	TLS         TLS    `mapstructure:"tls"`
	Auth        Auth   `mapstructure:"auth"`
}

type TLS struct {
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

type Auth struct {
	SecretKey      string        `mapstructure:"secretKey"`
	AccessExpire   time.Duration `mapstructure:"accessExpire"`
	RefreshExpire  time.Duration `mapstructure:"refreshExpire"`
	RedisKeyPrefix string        `mapstructure:"redisKeyPrefix"`
}

// SetDefaults fills zero values.
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.Mode == "" {
		h.Mode = "release"
	}
	if h.ReadTimeout == 0 {
		h.ReadTimeout = 60
	}
	if h.WriteTimeout == 0 {
		h.WriteTimeout = 60
	}
	if h.IdleTimeout == 0 {
		h.IdleTimeout = 120
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 30
	}
	if h.BodyLimit == 0 {
		h.BodyLimit = 4
	}
	if h.AllowOrigin == "" {
		h.AllowOrigin = "*"
	}
	if h.Auth.AccessExpire == 0 {
		h.Auth.AccessExpire = 2 * time.Hour
	}
	if h.Auth.RefreshExpire == 0 {
		h.Auth.RefreshExpire = 7 * 24 * time.Hour
	}
	if h.Auth.RedisKeyPrefix == "" {
		h.Auth.RedisKeyPrefix = "edo:token:"
	}
}

func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}
