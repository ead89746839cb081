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

import (
	"sync"

	"github.com/go-arcade/edo/pkg/log"
)

type DefaultHub struct {
	mu    sync.RWMutex
	users map[string]map[string]Conn
}

func NewHub() Hub {
	return &DefaultHub{users: make(map[string]map[string]Conn)}
}

func (h *DefaultHub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.users[conn.UserID()]
	if !ok {
		conns = make(map[string]Conn)
		h.users[conn.UserID()] = conns
	}
	conns[conn.ID()] = conn
}

func (h *DefaultHub) Unregister(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.users[conn.UserID()]
	if !ok {
		return
	}
	delete(conns, conn.ID())
	if len(conns) == 0 {
		delete(h.users, conn.UserID())
	}
}

func (h *DefaultHub) SendToUser(userID string, v any) (int, error) {
	h.mu.RLock()
	targets := make([]Conn, 0, len(h.users[userID]))
	for _, c := range h.users[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return 0, ErrNoSubscriber
	}
	sent := 0
	for _, c := range targets {
		if err := c.WriteJSON(v); err != nil {
			log.Debugw("websocket write failed", "userId", userID, "connId", c.ID(), "error", err)
			h.Unregister(c)
			_ = c.Close()
			continue
		}
		sent++
	}
	return sent, nil
}

func (h *DefaultHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.users {
		n += len(conns)
	}
	return n
}
