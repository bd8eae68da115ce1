package session

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeInstance records Close calls.
type fakeInstance struct {
	mu     sync.Mutex
	closed int
}

func (f *fakeInstance) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
}

func (f *fakeInstance) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(t *testing.T, cfg Config) (*Manager[*fakeInstance], *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Hour
	}
	m := NewManager[*fakeInstance](cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = clock.Now
	t.Cleanup(m.Stop)
	return m, clock
}

func create(t *testing.T, m *Manager[*fakeInstance], ip string) (string, *fakeInstance) {
	t.Helper()
	id, inst, err := m.Create(ip, func(string) (*fakeInstance, error) { return &fakeInstance{}, nil })
	require.NoError(t, err)
	return id, inst
}

func ipCount(m *Manager[*fakeInstance], ip string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byIP[ip]
}

func TestManagerCreateAndGet(t *testing.T) {
	m, _ := newTestManager(t, Config{})

	var builtFor string
	id, inst, err := m.Create("1.1.1.1", func(id string) (*fakeInstance, error) {
		builtFor = id
		return &fakeInstance{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, id, builtFor)
	assert.Len(t, id, 36)

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, inst, got)
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 1, ipCount(m, "1.1.1.1"))

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestManagerBuildError(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	boom := errors.New("boom")

	_, _, err := m.Create("ip", func(string) (*fakeInstance, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, m.Count())
}

func TestManagerRemove(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	var reasons []Reason
	m.SetOnClose(func(_ string, r Reason) { reasons = append(reasons, r) })

	id, inst := create(t, m, "ip")
	m.Remove(id)
	m.Remove(id)

	assert.Equal(t, 1, inst.Closed())
	assert.Zero(t, m.Count())
	assert.Zero(t, ipCount(m, "ip"))
	assert.Equal(t, []Reason{ReasonRemoved}, reasons)
}

func TestManagerIdleExpiryOnGet(t *testing.T) {
	m, clock := newTestManager(t, Config{IdleTimeout: time.Minute})
	id, inst := create(t, m, "ip")

	clock.Advance(30 * time.Second)
	_, ok := m.Get(id)
	require.True(t, ok, "use refreshes the idle timer")

	clock.Advance(45 * time.Second)
	_, ok = m.Get(id)
	require.True(t, ok)

	clock.Advance(2 * time.Minute)
	_, ok = m.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 1, inst.Closed())
}

func TestManagerCleanupExpired(t *testing.T) {
	m, clock := newTestManager(t, Config{IdleTimeout: time.Minute})
	oldID, old := create(t, m, "ip")
	clock.Advance(50 * time.Second)
	_, fresh := create(t, m, "ip")

	clock.Advance(20 * time.Second)
	assert.Equal(t, 1, m.cleanupExpired())

	assert.Equal(t, 1, old.Closed())
	assert.Zero(t, fresh.Closed())
	_, ok := m.Get(oldID)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Count())
}

func TestManagerMaxInstancesEvictsLRU(t *testing.T) {
	m, clock := newTestManager(t, Config{MaxInstances: 2})
	idA, a := create(t, m, "a")
	clock.Advance(time.Second)
	_, b := create(t, m, "b")
	clock.Advance(time.Second)

	// Touch a so b becomes the least recently used.
	_, ok := m.Get(idA)
	require.True(t, ok)

	_, c := create(t, m, "c")
	assert.Zero(t, a.Closed())
	assert.Equal(t, 1, b.Closed())
	assert.Zero(t, c.Closed())
	assert.Equal(t, 2, m.Count())
}

func TestManagerIPLimitEvicts(t *testing.T) {
	m, _ := newTestManager(t, Config{MaxPerIP: 2, EvictOnIPLimit: true})
	var reasons []Reason
	m.SetOnClose(func(_ string, r Reason) { reasons = append(reasons, r) })

	_, first := create(t, m, "ip")
	create(t, m, "ip")
	create(t, m, "other")
	create(t, m, "ip")

	assert.Equal(t, 1, first.Closed())
	assert.Equal(t, 2, ipCount(m, "ip"))
	assert.Equal(t, 1, ipCount(m, "other"))
	assert.Equal(t, []Reason{ReasonIPLimit}, reasons)
	assert.Equal(t, Stats{Active: 3, Addresses: 2, TotalCreated: 4, TotalClosed: 1}, m.Stats())
}

func TestManagerIPLimitRejects(t *testing.T) {
	m, _ := newTestManager(t, Config{MaxPerIP: 1})
	create(t, m, "ip")

	rejected := &fakeInstance{}
	_, _, err := m.Create("ip", func(string) (*fakeInstance, error) { return rejected, nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyForIP)
	assert.Equal(t, 429, vangoerrors.StatusOf(err))
	assert.Equal(t, 1, rejected.Closed())
}

func TestManagerTouchKeepsInstanceAlive(t *testing.T) {
	m, clock := newTestManager(t, Config{IdleTimeout: time.Minute})
	id, inst := create(t, m, "ip")

	// Steady use for longer than the idle timeout.
	for i := 0; i < 5; i++ {
		clock.Advance(40 * time.Second)
		require.True(t, m.Touch(id), "touch %d", i)
		assert.Zero(t, m.cleanupExpired())
	}
	assert.Zero(t, inst.Closed())

	clock.Advance(61 * time.Second)
	assert.False(t, m.Touch(id))
	assert.Equal(t, 1, inst.Closed())
	assert.False(t, m.Touch("missing"))
}

func TestManagerTouchMovesToFront(t *testing.T) {
	m, clock := newTestManager(t, Config{MaxInstances: 2})
	idA, a := create(t, m, "a")
	clock.Advance(time.Second)
	_, b := create(t, m, "b")

	require.True(t, m.Touch(idA))
	create(t, m, "c")

	assert.Zero(t, a.Closed())
	assert.Equal(t, 1, b.Closed())
}

func TestManagerStopClosesEverything(t *testing.T) {
	m, _ := newTestManager(t, Config{})
	_, a := create(t, m, "ip")
	_, b := create(t, m, "ip")

	m.Stop()
	m.Stop()

	assert.Equal(t, 1, a.Closed())
	assert.Equal(t, 1, b.Closed())

	_, _, err := m.Create("ip", func(string) (*fakeInstance, error) { return &fakeInstance{}, nil })
	assert.ErrorIs(t, err, ErrStopped)

	stats := m.Stats()
	assert.Zero(t, stats.Addresses)
	assert.Equal(t, uint64(2), stats.TotalCreated)
	assert.Equal(t, uint64(2), stats.TotalClosed)
	assert.Zero(t, stats.Active)
}

func TestManagerCleanupLoopRuns(t *testing.T) {
	m := NewManager[*fakeInstance](Config{IdleTimeout: time.Millisecond, CleanupInterval: 5 * time.Millisecond}, nil)
	defer m.Stop()

	_, inst := create(t, m, "ip")
	assert.Eventually(t, func() bool { return inst.Closed() == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, m.Count())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 100, cfg.MaxPerIP)
	assert.True(t, cfg.EvictOnIPLimit)

	filled := Config{}.withDefaults()
	assert.Equal(t, cfg.CleanupInterval, filled.CleanupInterval)
	assert.Zero(t, filled.MaxInstances)
}
