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

package http

import (
	"time"

	"github.com/go-arcade/edo/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// AccessLogFormat logs one line per request. Probe endpoints are skipped.
func AccessLogFormat() fiber.Handler {
	excludedPaths := map[string]bool{
		"/health":  true,
		"/metrics": true,
	}

	return func(c *fiber.Ctx) error {
		if excludedPaths[c.Path()] {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		queryStr := ""
		if query := c.Context().QueryArgs().String(); query != "" {
			queryStr = "?" + query
		}

		log.Infow("HTTP request",
			"method", c.Method(),
			"path", c.Path(),
			"query", queryStr,
			"status", c.Response().StatusCode(),
			"ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
			"latency", time.Since(start).String(),
		)

		return err
	}
}
