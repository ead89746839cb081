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
	"github.com/gofiber/fiber/v2"
)

type ResponseErr struct {
	ErrCode int               `json:"code"`
	ErrMsg  string            `json:"errMsg"`
	Path    string            `json:"path,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WithRepErrMsg writes an error payload with the status registered for code.
func WithRepErrMsg(c *fiber.Ctx, code int, errMsg string, path string) error {
	return c.Status(StatusOf(code)).JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    path,
	})
}

// WithRepError writes a domain error, including field level validation messages.
func WithRepError(c *fiber.Ctx, err *Error) error {
	return c.Status(err.Kind.Status).JSON(ResponseErr{
		ErrCode: err.Kind.Code,
		ErrMsg:  err.Message(),
		Path:    c.Path(),
		Fields:  err.Fields,
	})
}
