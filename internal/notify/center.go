// Package notify provides the in-process notification center: published
// messages fan out to subscribers and expire on their own after a fixed
// lifetime.
package notify

import (
	"sync"
	"time"
)

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// DefaultTTL matches the on-screen lifetime of a toast.
const DefaultTTL = 5 * time.Second

type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	nextID  int64
	active  map[int64]Notification
	subs    map[int64]func(Notification)
	nextSub int64
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		active: make(map[int64]Notification),
		subs:   make(map[int64]func(Notification)),
	}
}

// Publish adds a notification, notifies subscribers and schedules expiry.
func (c *Center) Publish(message, level string) int64 {
	c.mu.Lock()
	c.nextID++
	id := c.nextID
	n := Notification{ID: id, Message: message, Level: level, CreatedAt: time.Now()}
	c.active[id] = n
	subs := make([]func(Notification), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	return id
}

// Subscribe registers a callback for future notifications and returns an
// unsubscribe func.
func (c *Center) Subscribe(fn func(Notification)) func() {
	c.mu.Lock()
	c.nextSub++
	key := c.nextSub
	c.subs[key] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, key)
		c.mu.Unlock()
	}
}

// Dismiss removes a notification before its TTL elapses.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	delete(c.active, id)
	c.mu.Unlock()
}

// Active returns the notifications that have not expired, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, 0, len(c.active))
	for _, n := range c.active {
		out = append(out, n)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].ID < out[j-1].ID; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
