package session

import (
	"container/list"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
)

// Closer is implemented by values a Manager keeps.
type Closer interface {
	Close()
}

// Reason tells why an instance left the manager.
type Reason string

const (
	ReasonExpired  Reason = "expired"
	ReasonEvicted  Reason = "evicted"
	ReasonIPLimit  Reason = "ip_limit"
	ReasonRemoved  Reason = "removed"
	ReasonShutdown Reason = "shutdown"
)

// Errors returned by Create.
var (
	ErrTooManyForIP = vangoerrors.New("E011")
	ErrStopped      = vangoerrors.New("E012")
)

// entry is one managed instance.
type entry[T Closer] struct {
	id         string
	ip         string
	value      T
	createdAt  time.Time
	lastActive time.Time
	elem       *list.Element
}

// Manager keeps live instances keyed by ID.
type Manager[T Closer] struct {
	mu sync.Mutex

	entries map[string]*entry[T]

	// lru holds IDs, front = most recently used
	lru *list.List

	byIP map[string]int

	config Config
	logger *slog.Logger
	now    func() time.Time

	onClose func(id string, reason Reason)

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64

	done        chan struct{}
	cleanupDone chan struct{}
	stopped     bool
}

// NewManager creates a Manager and starts its cleanup goroutine.
// Call Stop to release it.
func NewManager[T Closer](config Config, logger *slog.Logger) *Manager[T] {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager[T]{
		entries:     make(map[string]*entry[T]),
		lru:         list.New(),
		byIP:        make(map[string]int),
		config:      config.withDefaults(),
		logger:      logger.With("component", "session_manager"),
		now:         time.Now,
		done:        make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

// SetOnClose sets a callback run after an instance is closed.
func (m *Manager[T]) SetOnClose(fn func(id string, reason Reason)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = fn
}

// Create builds a new instance for ip under a fresh ID. build runs without
// the manager lock held; if it fails nothing is registered.
func (m *Manager[T]) Create(ip string, build func(id string) (T, error)) (string, T, error) {
	var zero T
	id := uuid.NewString()

	value, err := build(id)
	if err != nil {
		return "", zero, err
	}

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		value.Close()
		return "", zero, ErrStopped
	}

	var closing []closed[T]
	if m.config.MaxPerIP > 0 && m.byIP[ip] >= m.config.MaxPerIP {
		if !m.config.EvictOnIPLimit {
			m.mu.Unlock()
			value.Close()
			return "", zero, vangoerrors.New("E011").WithDetailf("address %s already has %d instances", ip, m.byIP[ip])
		}
		if e := m.oldestForIPLocked(ip); e != nil {
			closing = append(closing, closed[T]{m.removeLocked(e.id), ReasonIPLimit})
		}
	}
	if m.config.MaxInstances > 0 {
		for len(m.entries) >= m.config.MaxInstances {
			back := m.lru.Back()
			if back == nil {
				break
			}
			closing = append(closing, closed[T]{m.removeLocked(back.Value.(string)), ReasonEvicted})
		}
	}

	now := m.now()
	e := &entry[T]{id: id, ip: ip, value: value, createdAt: now, lastActive: now}
	e.elem = m.lru.PushFront(id)
	m.entries[id] = e
	m.byIP[ip]++
	active := len(m.entries)
	m.mu.Unlock()

	m.totalCreated.Add(1)
	m.closeAll(closing)

	m.logger.Debug("instance created", "instance_id", id, "ip", ip, "active", active)
	return id, value, nil
}

// closed pairs a removed entry with the reason it was removed.
type closed[T Closer] struct {
	e      *entry[T]
	reason Reason
}

// Get returns the instance with id and marks it used. Instances past their
// idle timeout are closed and not returned.
func (m *Manager[T]) Get(id string) (T, bool) {
	e, ok := m.touch(id)
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Touch marks the instance with id used, the way Get does, without
// returning it. Long-lived connections call it for every message so an
// instance in use never expires. It reports false when id is unknown or
// already expired.
func (m *Manager[T]) Touch(id string) bool {
	_, ok := m.touch(id)
	return ok
}

func (m *Manager[T]) touch(id string) (*entry[T], bool) {
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		m.mu.Unlock()
		return nil, false
	}
	now := m.now()
	if now.Sub(e.lastActive) > m.config.IdleTimeout {
		m.removeLocked(id)
		m.mu.Unlock()
		m.closeAll([]closed[T]{{e, ReasonExpired}})
		return nil, false
	}
	e.lastActive = now
	m.lru.MoveToFront(e.elem)
	m.mu.Unlock()
	return e, true
}

// Remove closes and forgets the instance with id.
func (m *Manager[T]) Remove(id string) {
	m.mu.Lock()
	e := m.removeLocked(id)
	m.mu.Unlock()
	if e != nil {
		m.closeAll([]closed[T]{{e, ReasonRemoved}})
	}
}

// Count returns the number of live instances.
func (m *Manager[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats is a snapshot of manager counters.
type Stats struct {
	Active       int    `json:"active"`
	Addresses    int    `json:"addresses"`
	TotalCreated uint64 `json:"total_created"`
	TotalClosed  uint64 `json:"total_closed"`
}

// Stats returns current counters.
func (m *Manager[T]) Stats() Stats {
	m.mu.Lock()
	active, addresses := len(m.entries), len(m.byIP)
	m.mu.Unlock()
	return Stats{
		Active:       active,
		Addresses:    addresses,
		TotalCreated: m.totalCreated.Load(),
		TotalClosed:  m.totalClosed.Load(),
	}
}

// Stop stops the cleanup goroutine and closes every instance. Create fails
// afterwards. Stop is idempotent.
func (m *Manager[T]) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	close(m.done)
	var closing []closed[T]
	for id := range m.entries {
		closing = append(closing, closed[T]{m.removeLocked(id), ReasonShutdown})
	}
	m.mu.Unlock()

	<-m.cleanupDone
	m.closeAll(closing)
	stats := m.Stats()
	m.logger.Info("session manager stopped",
		"closed_instances", len(closing),
		"total_created", stats.TotalCreated,
		"total_closed", stats.TotalClosed)
}

// cleanupLoop periodically removes expired instances.
func (m *Manager[T]) cleanupLoop() {
	defer close(m.cleanupDone)

	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanupExpired()
		case <-m.done:
			return
		}
	}
}

// cleanupExpired removes instances that have exceeded the idle timeout.
func (m *Manager[T]) cleanupExpired() int {
	m.mu.Lock()
	now := m.now()
	var closing []closed[T]
	// The back of the list is the least recently used.
	for el := m.lru.Back(); el != nil; {
		prev := el.Prev()
		e := m.entries[el.Value.(string)]
		if now.Sub(e.lastActive) <= m.config.IdleTimeout {
			break
		}
		closing = append(closing, closed[T]{m.removeLocked(e.id), ReasonExpired})
		el = prev
	}
	remaining := len(m.entries)
	m.mu.Unlock()

	m.closeAll(closing)
	if len(closing) > 0 {
		m.logger.Info("cleaned up expired instances", "count", len(closing), "remaining", remaining)
	}
	return len(closing)
}

// oldestForIPLocked returns the least recently used entry of ip.
func (m *Manager[T]) oldestForIPLocked(ip string) *entry[T] {
	for el := m.lru.Back(); el != nil; el = el.Prev() {
		if e := m.entries[el.Value.(string)]; e.ip == ip {
			return e
		}
	}
	return nil
}

// removeLocked unregisters id and returns its entry, or nil.
func (m *Manager[T]) removeLocked(id string) *entry[T] {
	e, ok := m.entries[id]
	if !ok {
		return nil
	}
	delete(m.entries, id)
	m.lru.Remove(e.elem)
	if m.byIP[e.ip] <= 1 {
		delete(m.byIP, e.ip)
	} else {
		m.byIP[e.ip]--
	}
	return e
}

// closeAll closes removed entries outside the lock.
func (m *Manager[T]) closeAll(items []closed[T]) {
	m.mu.Lock()
	onClose := m.onClose
	m.mu.Unlock()

	for _, c := range items {
		if c.e == nil {
			continue
		}
		c.e.value.Close()
		m.totalClosed.Add(1)
		m.logger.Debug("instance closed", "instance_id", c.e.id, "reason", string(c.reason))
		if onClose != nil {
			onClose(c.e.id, c.reason)
		}
	}
}
