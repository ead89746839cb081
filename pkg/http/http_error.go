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
	"errors"
	"fmt"
)

// Error is a coded error returned by services. Kind selects the wire code and
// HTTP status, Msg overrides the default message.
type Error struct {
	Kind   *Response
	Msg    string
	Fields map[string]string
	cause  error
}

var (
	ErrAuthRequired = &Error{Kind: Unauthorized}
	ErrForbidden    = &Error{Kind: Forbidden}
)

func NewError(kind *Response, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap keeps cause for logging while exposing kind and msg to the caller.
func Wrap(kind *Response, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, cause: cause}
}

func NewValidationError(field, msg string) *Error {
	return &Error{
		Kind:   ValidationFailed,
		Msg:    fmt.Sprintf("%s: %s", field, msg),
		Fields: map[string]string{field: msg},
	}
}

func NewFieldErrors(fields map[string]string) *Error {
	return &Error{Kind: ValidationFailed, Fields: fields}
}

func NewNotFound(entity string) *Error {
	return &Error{Kind: NotFound, Msg: entity + " not found"}
}

func NewConflict(msg string) *Error {
	return &Error{Kind: Conflict, Msg: msg}
}

func NewForbidden(msg string) *Error {
	return &Error{Kind: Forbidden, Msg: msg}
}

func (e *Error) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Kind.Msg
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message(), e.cause)
	}
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrForbidden) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind != nil && e.Kind != nil && t.Kind.Code == e.Kind.Code
}

// IsKind reports whether err is a coded error of kind.
func IsKind(err error, kind *Response) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind != nil && e.Kind.Code == kind.Code
}

// AsError extracts the coded error, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
