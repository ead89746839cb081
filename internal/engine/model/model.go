package model

import (
	"time"

	"github.com/go-arcade/edo/pkg/database"
	"github.com/go-arcade/edo/pkg/http"
	"gorm.io/datatypes"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/28 21:55
 * @file: model.go
 * @description: base model
 */

type BaseModel struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// AllModels lists every table in dependency order.
func AllModels() []any {
	return []any{
		&User{},
		&Role{},
		&UserRoleBinding{},
		&Property{},
		&Unit{},
		&Tenant{},
		&Payment{},
		&Notice{},
		&TenantInvitation{},
		&Maintenance{},
		&MaintenanceMessage{},
		&ChatMessage{},
		&VacateRequest{},
	}
}

func init() {
	database.RegisterModels(AllModels()...)
}

// Page is the common pagination query.
type Page struct {
	Page     int `query:"page" json:"page"`
	PageSize int `query:"pageSize" json:"pageSize"`
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps page and pageSize and returns the offset.
func (p *Page) Normalize() int {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return (p.Page - 1) * p.PageSize
}

// ParseDate parses YYYY-MM-DD in UTC.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.ParseInLocation(http.DateLayout, s, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Today is the current date in UTC.
func Today() datatypes.Date {
	now := time.Now().UTC()
	return datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
}
