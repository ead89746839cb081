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
	"fmt"
	"time"

	tracecontext "github.com/go-arcade/edo/pkg/trace/context"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const fiberTracerName = "github.com/go-arcade/edo/pkg/trace/inject/fiber"

// FiberMiddleware returns a Fiber middleware for OpenTelemetry tracing
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(fiberTracerName)
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if ctx == nil {
			ctx = context.Background()
		}

		carrier := propagation.MapCarrier{}
		for key, values := range c.GetReqHeaders() {
			if len(values) > 0 {
				carrier[key] = values[0]
			}
		}
		ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

		start := time.Now()
		ctx, span := tracer.Start(ctx, c.Method()+" "+c.Path(), trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		// goroutine 级别的 context，供日志与 gorm 回调读取
		tracecontext.SetContext(ctx)
		defer tracecontext.ClearContext()

		c.SetUserContext(ctx)

		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Method()),
			attribute.String("http.scheme", c.Protocol()),
			attribute.String("http.target", string(c.Request().URI().RequestURI())),
		}
		if id, ok := c.Locals("request_id").(string); ok && id != "" {
			attrs = append(attrs, attribute.String("http.request.id", id))
		}
		if userAgent := c.Get(fiber.HeaderUserAgent); userAgent != "" {
			attrs = append(attrs, attribute.String("http.user_agent", userAgent))
		}
		span.SetAttributes(attrs...)

		err := c.Next()

		statusCode := c.Response().StatusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", statusCode),
			attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
		)
		if route := c.Route(); route != nil {
			span.SetAttributes(attribute.String("http.route", route.Path))
		}

		switch {
		case err != nil:
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		case statusCode >= 500:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
