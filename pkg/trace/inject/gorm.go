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

package inject

import (
	"context"
	"time"

	tracecontext "github.com/go-arcade/edo/pkg/trace/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	gormTracerName = "github.com/go-arcade/edo/pkg/trace/inject/gorm"
	callbackBefore = "opentelemetry:before"
	callbackAfter  = "opentelemetry:after"
)

type (
	gormSpanKey  struct{}
	gormStartKey struct{}
)

// GormPlugin implements gorm.Plugin for OpenTelemetry tracing
type GormPlugin struct {
	// WithQuery records the SQL statement on the span
	WithQuery bool
	// WithRows records rows affected
	WithRows bool

	tracer trace.Tracer
}

// Name returns the plugin name
func (p *GormPlugin) Name() string {
	return "opentelemetry"
}

// Initialize registers before/after callbacks on every gorm processor
func (p *GormPlugin) Initialize(db *gorm.DB) error {
	p.tracer = otel.Tracer(gormTracerName)
	cb := db.Callback()

	errs := []error{
		cb.Create().Before("gorm:create").Register(callbackBefore, p.before("create")),
		cb.Query().Before("gorm:query").Register(callbackBefore, p.before("query")),
		cb.Update().Before("gorm:update").Register(callbackBefore, p.before("update")),
		cb.Delete().Before("gorm:delete").Register(callbackBefore, p.before("delete")),
		cb.Row().Before("gorm:row").Register(callbackBefore, p.before("row")),
		cb.Raw().Before("gorm:raw").Register(callbackBefore, p.before("raw")),

		cb.Create().After("gorm:create").Register(callbackAfter, p.afterCallback),
		cb.Query().After("gorm:query").Register(callbackAfter, p.afterCallback),
		cb.Update().After("gorm:update").Register(callbackAfter, p.afterCallback),
		cb.Delete().After("gorm:delete").Register(callbackAfter, p.afterCallback),
		cb.Row().After("gorm:row").Register(callbackAfter, p.afterCallback),
		cb.Raw().After("gorm:raw").Register(callbackAfter, p.afterCallback),
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *GormPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		if db.Statement == nil {
			return
		}
		p.startSpan(db, operation)
	}
}

func (p *GormPlugin) startSpan(db *gorm.DB, operation string) {

	ctx := db.Statement.Context
	if ctx == nil {
		if goroutineCtx := tracecontext.GetContext(); goroutineCtx != nil {
			ctx = goroutineCtx
		} else {
			ctx = context.Background()
		}
	}
	ctx = tracecontext.ContextWithSpan(ctx)

	ctx, span := p.tracer.Start(ctx, "gorm."+operation, trace.WithSpanKind(trace.SpanKindClient))

	attrs := []attribute.KeyValue{
		attribute.String("db.system", db.Dialector.Name()),
		attribute.String("db.operation", operation),
	}
	if db.Statement.Schema != nil && db.Statement.Schema.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", db.Statement.Schema.Table))
	} else if db.Statement.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", db.Statement.Table))
	}
	span.SetAttributes(attrs...)

	ctx = context.WithValue(ctx, gormSpanKey{}, span)
	db.Statement.Context = context.WithValue(ctx, gormStartKey{}, time.Now())
}

func (p *GormPlugin) afterCallback(db *gorm.DB) {
	if db.Statement == nil || db.Statement.Context == nil {
		return
	}

	span, ok := db.Statement.Context.Value(gormSpanKey{}).(trace.Span)
	if !ok {
		return
	}
	defer span.End()

	if start, ok := db.Statement.Context.Value(gormStartKey{}).(time.Time); ok {
		span.SetAttributes(attribute.Int64("db.duration_ms", time.Since(start).Milliseconds()))
	}
	if p.WithQuery {
		if sql := db.Statement.SQL.String(); sql != "" {
			span.SetAttributes(attribute.String("db.statement", sql))
		}
	}
	if p.WithRows && db.Statement.RowsAffected > 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}

	if err := db.Error; err != nil && err != gorm.ErrRecordNotFound {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// RegisterGormPlugin registers the OpenTelemetry plugin on db
func RegisterGormPlugin(db *gorm.DB, withQuery bool, withRows bool) error {
	return db.Use(&GormPlugin{
		WithQuery: withQuery,
		WithRows:  withRows,
	})
}
