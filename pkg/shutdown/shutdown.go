package shutdown

import (
	"sync"
	"sync/atomic"

	"github.com/google/wire"
)

// ProviderSet is the Wire provider set for the shutdown manager.
var ProviderSet = wire.NewSet(NewManager)

// Manager tracks whether the process is draining. /health turns 503 once
// Shutdown has been called so load balancers stop routing new requests.
type Manager struct {
	draining atomic.Bool
	once     sync.Once
	done     chan struct{}
}

func NewManager() *Manager {
	return &Manager{done: make(chan struct{})}
}

func (m *Manager) IsShuttingDown() bool {
	return m.draining.Load()
}

// Shutdown flips the manager into draining. It reports false when it was
// already draining.
func (m *Manager) Shutdown() bool {
	if !m.draining.CompareAndSwap(false, true) {
		return false
	}
	m.once.Do(func() { close(m.done) })
	return true
}

// Wait is closed once Shutdown has been called.
func (m *Manager) Wait() <-chan struct{} {
	return m.done
}
