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

package auth

import (
	"encoding/base64"
	"errors"
)

// AuthType represents the authentication type
type AuthType string

const (
	AuthTypeBasic  AuthType = "basic"  // Basic authentication
	AuthTypeBearer AuthType = "bearer" // Bearer token authentication
)

// IAuthProvider supplies credentials to a notification channel.
type IAuthProvider interface {
	GetAuthType() AuthType
	// GetAuthHeader gets the authentication header key and value
	GetAuthHeader() (string, string)
	Validate() error
}

// BearerAuth implements bearer token authentication
type BearerAuth struct {
	Token string
}

func NewBearerAuth(token string) *BearerAuth {
	return &BearerAuth{Token: token}
}

func (a *BearerAuth) GetAuthType() AuthType {
	return AuthTypeBearer
}

func (a *BearerAuth) GetAuthHeader() (string, string) {
	return "Authorization", "Bearer " + a.Token
}

func (a *BearerAuth) Validate() error {
	if a.Token == "" {
		return errors.New("bearer token is required")
	}
	return nil
}

// BasicAuth carries SMTP PLAIN credentials. As a header it renders RFC 7617 basic auth.
type BasicAuth struct {
	Username string
	Password string
}

func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{
		Username: username,
		Password: password,
	}
}

func (a *BasicAuth) GetAuthType() AuthType {
	return AuthTypeBasic
}

func (a *BasicAuth) GetAuthHeader() (string, string) {
	raw := a.Username + ":" + a.Password
	return "Authorization", "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

func (a *BasicAuth) Validate() error {
	if a.Username == "" {
		return errors.New("username is required")
	}
	if a.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
