package access

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// loginThrottle limits login attempts per username: bursts of 5, then one
// attempt per minute, with stale entries dropped after 30 minutes.
type loginThrottle struct {
	mu       sync.Mutex
	disabled bool
	clients  map[string]*throttleEntry
}

type throttleEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginThrottle(disabled bool) *loginThrottle {
	return &loginThrottle{
		disabled: disabled,
		clients:  make(map[string]*throttleEntry),
	}
}

func (t *loginThrottle) allow(username string) bool {
	if t.disabled {
		return true
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, exists := t.clients[username]
	if !exists {
		entry = &throttleEntry{
			limiter: rate.NewLimiter(rate.Every(time.Minute), 5),
		}
		t.clients[username] = entry
	}
	entry.lastSeen = time.Now()

	for name, client := range t.clients {
		if time.Since(client.lastSeen) > 30*time.Minute {
			delete(t.clients, name)
		}
	}

	return entry.limiter.Allow()
}
