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
	"time"

	"github.com/go-arcade/edo/pkg/id"
	"github.com/go-arcade/edo/pkg/safe"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const (
	readLimit  = 4 * 1024
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	writeWait  = 10 * time.Second
)

// UserLocal is the fiber local that must hold the user id before the upgrade.
const UserLocal = "ws_user"

type conn struct {
	ws        *websocket.Conn
	id        string
	userID    string
	writeMu   sync.Mutex
	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(wsConn *websocket.Conn, userID string) *conn {
	return &conn{
		ws:     wsConn,
		id:     id.GetUUID(),
		userID: userID,
		closed: make(chan struct{}),
	}
}

func (c *conn) ID() string {
	return c.id
}

func (c *conn) UserID() string {
	return c.userID
}

func (c *conn) WriteJSON(v any) error {
	select {
	case <-c.closed:
		return ErrConnectionClosed
	default:
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(PingMessage, nil)
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.ws.Close()
	})
	return err
}

// Upgrade rejects plain http requests on a websocket route.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle serves a push-only socket. Inbound frames are read and dropped so
// that pongs and close frames are processed.
func Handle(hub Hub) fiber.Handler {
	return websocket.New(func(wsConn *websocket.Conn) {
		userID, _ := wsConn.Locals(UserLocal).(string)
		if userID == "" {
			_ = wsConn.Close()
			return
		}
		c := newConn(wsConn, userID)
		hub.Register(c)
		defer func() {
			hub.Unregister(c)
			_ = c.Close()
		}()

		wsConn.SetReadLimit(readLimit)
		_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
		wsConn.SetPongHandler(func(string) error {
			return wsConn.SetReadDeadline(time.Now().Add(pongWait))
		})

		safe.Go(func() {
			ticker := time.NewTicker(pingPeriod)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := c.ping(); err != nil {
						_ = c.Close()
						return
					}
				case <-c.closed:
					return
				}
			}
		})

		_ = c.WriteJSON(Envelope{Type: "ready", Data: fiber.Map{"connectionId": c.id}})
		for {
			if _, _, err := wsConn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
