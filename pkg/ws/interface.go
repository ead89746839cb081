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

package ws

// Conn is one live websocket of a user. A user may hold several (tabs, devices).
type Conn interface {
	ID() string
	UserID() string
	WriteJSON(v any) error
	Close() error
}

// Hub indexes live connections by user.
type Hub interface {
	Register(conn Conn)
	Unregister(conn Conn)
	// SendToUser writes v to every connection of userID and returns how many
	// writes succeeded.
	SendToUser(userID string, v any) (int, error)
	Count() int
}

// Envelope is the frame pushed to clients.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

const (
	TextMessage  = 1
	CloseMessage = 8
	PingMessage  = 9
)
