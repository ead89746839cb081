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

import "net/http"

var statusByCode = map[int]int{}

var (
	// BadRequest 400
	BadRequest                    = failed(4000, http.StatusBadRequest, "Bad request")
	RequestParameterParsingFailed = failed(4001, http.StatusBadRequest, "Request parameter parsing failed")
	ValidationFailed              = failed(4002, http.StatusBadRequest, "Validation failed")

	// Unauthorized 401
	Unauthorized           = failed(4401, http.StatusUnauthorized, "Authentication required")
	AuthenticationFailed   = failed(4402, http.StatusUnauthorized, "Authentication failed")
	AuthorizationIncorrect = failed(4403, http.StatusUnauthorized, "The authorization header format is incorrect")
	InvalidToken           = failed(4405, http.StatusUnauthorized, "Invalid token")
	TokenBeEmpty           = failed(4406, http.StatusUnauthorized, "Token cannot be empty")
	TokenExpired           = failed(4407, http.StatusUnauthorized, "Token is expired")

	// Forbidden 403
	Forbidden        = failed(4030, http.StatusForbidden, "Forbidden")
	PermissionDenied = failed(4031, http.StatusForbidden, "Permission denied")

	// NotFound 404
	NotFound      = failed(4004, http.StatusNotFound, "Not found")
	UserNotExist  = failed(4041, http.StatusNotFound, "User does not exist")
	RouteNotFound = failed(4044, http.StatusNotFound, "Route not found")

	// Conflict 409
	Conflict              = failed(4090, http.StatusConflict, "Conflict")
	UserAlreadyExist      = failed(4042, http.StatusConflict, "User already exists")
	UserIncorrectPassword = failed(4043, http.StatusUnauthorized, "Incorrect email or password")

	PayloadTooLarge = failed(4130, http.StatusRequestEntityTooLarge, "Payload too large")

	InternalError = failed(5000, http.StatusInternalServerError, "Internal server error")
)

var (
	Success = success(200, "Request Success")
)

// failed 构造函数，同时登记业务码对应的 HTTP 状态码
func failed(code, status int, msg string) *Response {
	statusByCode[code] = status
	return &Response{
		Code:   code,
		Status: status,
		Msg:    msg,
	}
}

// success 构造函数
func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Status: http.StatusOK,
		Msg:    msg,
	}
}

// StatusOf returns the HTTP status registered for a business code.
func StatusOf(code int) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
