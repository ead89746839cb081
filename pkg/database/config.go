package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	dataTablePrefix = "t_"

	TypeMySQL    = "mysql"
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// DatabaseSourceConfig represents a single database source/replica configuration
type DatabaseSourceConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// MySQLConfig represents MySQL data source configuration
type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	// If Replicas is empty, no read-write separation will be configured
	Replicas []DatabaseSourceConfig `mapstructure:"replicas"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslMode"`
	TimeZone string `mapstructure:"timeZone"`
}

type SQLiteConfig struct {
	// Path is a file path or a sqlite URI such as file:edo?mode=memory&cache=shared
	Path string `mapstructure:"path"`
}

// Database represents the database configuration with common settings and data sources
type Database struct {
	Type          string `mapstructure:"type"`
	OutPut        bool   `mapstructure:"output"`
	SlowThreshold int    `mapstructure:"slowThreshold"` // milliseconds
	MaxOpenConns  int    `mapstructure:"maxOpenConns"`
	MaxIdleConns  int    `mapstructure:"maxIdleConns"`
	MaxLifetime   int    `mapstructure:"maxLifeTime"`
	MaxIdleTime   int    `mapstructure:"maxIdleTime"`
	ConnectRetry  int    `mapstructure:"connectRetry"`

	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

func (d *Database) SetDefaults() {
	if d.Type == "" {
		d.Type = TypeMySQL
	}
	if d.SlowThreshold <= 0 {
		d.SlowThreshold = 1000
	}
	if d.MaxOpenConns <= 0 {
		d.MaxOpenConns = 50
	}
	if d.MaxIdleConns <= 0 {
		d.MaxIdleConns = 10
	}
	if d.ConnectRetry <= 0 {
		d.ConnectRetry = 5
	}
	if d.MySQL.Port == "" {
		d.MySQL.Port = "3306"
	}
	if d.Postgres.Port == "" {
		d.Postgres.Port = "5432"
	}
	if d.Postgres.SSLMode == "" {
		d.Postgres.SSLMode = "disable"
	}
	if d.Postgres.TimeZone == "" {
		d.Postgres.TimeZone = "UTC"
	}
	if d.SQLite.Path == "" {
		d.SQLite.Path = "edo.db"
	}
}

func (d *Database) Validate() error {
	switch strings.ToLower(d.Type) {
	case TypeMySQL:
		if d.MySQL.Host == "" || d.MySQL.User == "" || d.MySQL.DBName == "" {
			return fmt.Errorf("mysql: host, user and dbname are required")
		}
	case TypePostgres:
		if d.Postgres.Host == "" || d.Postgres.User == "" || d.Postgres.DBName == "" {
			return fmt.Errorf("postgres: host, user and dbname are required")
		}
	case TypeSQLite:
		if d.SQLite.Path == "" {
			return fmt.Errorf("sqlite: path is required")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", d.Type)
	}
	return nil
}

// GetConnMaxLifetime returns ConnMaxLifetime as time.Duration from common config
func GetConnMaxLifetime(maxLifetime int) time.Duration {
	if maxLifetime > 0 {
		return time.Duration(maxLifetime) * time.Second
	}
	return 300 * time.Second
}

// GetConnMaxIdleTime returns ConnMaxIdleTime as time.Duration from common config
func GetConnMaxIdleTime(maxIdleTime int) time.Duration {
	if maxIdleTime > 0 {
		return time.Duration(maxIdleTime) * time.Second
	}
	return 60 * time.Second
}

// dialector picks the gorm driver for the configured type
func (d *Database) dialector() (gorm.Dialector, error) {
	switch strings.ToLower(d.Type) {
	case TypeMySQL:
		c := d.MySQL
		return mysql.Open(buildMySQLDSN(c.User, c.Password, c.Host, c.Port, c.DBName)), nil
	case TypePostgres:
		return postgres.Open(buildPostgresDSN(d.Postgres)), nil
	case TypeSQLite:
		return sqlite.Open(buildSQLiteDSN(d.SQLite.Path)), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", d.Type)
	}
}

// buildMySQLDSN builds MySQL DSN string from configuration
func buildMySQLDSN(user, password, host, port, db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, password, host, port, db)
}

func buildPostgresDSN(c PostgresConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode, c.TimeZone)
}

// buildSQLiteDSN turns on foreign keys so cascade and set-null rules apply
func buildSQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// buildDialectors converts DatabaseSourceConfig slice to gorm.Dialector slice
func buildDialectors(configs []DatabaseSourceConfig) ([]gorm.Dialector, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	dialectors := make([]gorm.Dialector, 0, len(configs))
	for _, c := range configs {
		if c.Host == "" || c.User == "" || c.DBName == "" {
			return nil, fmt.Errorf("incomplete database source config: host, user, and dbname are required")
		}
		port := c.Port
		if port == "" {
			port = "3306"
		}
		dialectors = append(dialectors, mysql.Open(buildMySQLDSN(c.User, c.Password, c.Host, port, c.DBName)))
	}
	return dialectors, nil
}
