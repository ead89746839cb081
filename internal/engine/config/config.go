package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/edo/internal/pkg/notify"
	"github.com/go-arcade/edo/internal/pkg/storage"
	"github.com/go-arcade/edo/pkg/cache"
	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/http"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/metrics"
	"github.com/go-arcade/edo/pkg/pprof"
	"github.com/go-arcade/edo/pkg/trace"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 23:20
 * @file: config.go
 * @description: application configuration, toml file + EDO_ environment
 */

const envPrefix = "EDO"

type InvitationConfig struct {
	// TTLHours 邀请有效期, 单位小时
	TTLHours int `mapstructure:"ttlHours"`
}

type AppConfig struct {
	Log        log.Conf
	Http       http.Http
	Database   database.Database
	Redis      cache.Redis
	Storage    storage.Storage
	Notify     notify.Conf
	Trace      trace.Conf
	Metrics    metrics.MetricsConfig
	Pprof      pprof.PprofConfig
	Invitation InvitationConfig
}

// SetDefaults fills every section that was left empty.
func (c *AppConfig) SetDefaults() {
	if c.Log.Output == "" {
		c.Log = *log.SetDefaults()
	}
	c.Http.SetDefaults()
	c.Database.SetDefaults()
	c.Redis.SetDefaults()
	c.Storage.SetDefaults()
	c.Notify.SetDefaults()
	c.Trace.SetDefaults()
	c.Metrics.SetDefaults()
	c.Pprof.SetDefaults()
	if c.Invitation.TTLHours <= 0 {
		c.Invitation.TTLHours = 7 * 24
	}
}

var (
	cfg  AppConfig
	mu   sync.RWMutex
	once sync.Once
)

// NewConf loads the configuration once per process.
func NewConf(confFile string) *AppConfig {
	once.Do(func() {
		loaded, err := LoadConfigFile(confFile)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		mu.Lock()
		cfg = loaded
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	c := cfg
	return &c
}

// LoadConfigFile reads confFile, applies EDO_ environment overrides and
// a sibling .env file, then fills defaults.
func LoadConfigFile(confFile string) (AppConfig, error) {
	var out AppConfig

	if err := loadDotEnv(filepath.Dir(confFile)); err != nil {
		return out, err
	}

	config := viper.New()
	config.SetConfigFile(confFile)
	config.SetConfigType("toml")
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	if err := config.ReadInConfig(); err != nil {
		return out, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := config.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	out.SetDefaults()

	config.OnConfigChange(func(e fsnotify.Event) {
		var next AppConfig
		if err := config.Unmarshal(&next); err != nil {
			log.Errorw("reload configuration failed", "file", e.Name, "error", err)
			return
		}
		next.SetDefaults()
		mu.Lock()
		cfg = next
		mu.Unlock()
		log.Infow("configuration reloaded", "file", e.Name)
	})
	config.WatchConfig()

	log.Infow("config file loaded", "path", confFile)
	return out, nil
}

// Current returns the latest loaded configuration, including hot reloads.
func Current() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func loadDotEnv(dir string) error {
	for _, name := range []string{filepath.Join(dir, ".env"), ".env"} {
		err := godotenv.Load(name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}
