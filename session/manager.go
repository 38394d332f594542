// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/katalvlaran/rowtrace/logger"
	"github.com/katalvlaran/rowtrace/matrix"
	"github.com/katalvlaran/rowtrace/metrics"
	"github.com/katalvlaran/rowtrace/notation"
	"github.com/katalvlaran/rowtrace/timeline"
)

// DefaultCacheSize is the number of sessions kept in memory by default.
const DefaultCacheSize = 128

var (
	// ErrNotFound is returned for an unknown session id.
	ErrNotFound = errors.New("session: not found")
	// ErrAlreadyExists is returned by stores that refuse to overwrite a session.
	ErrAlreadyExists = errors.New("session: already exists")
	// ErrClosed is returned by every Manager method after Close.
	ErrClosed = errors.New("session: manager closed")
)

// Store persists Records. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, r Record) error
	// Load returns ErrNotFound for an unknown id.
	Load(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
}

// entry is one live session. mu serializes every access to machine.
type entry struct {
	mu        sync.Mutex
	id        string
	machine   *timeline.Machine
	createdAt time.Time
	deleted   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore persists sessions on Save, on eviction and on Close, and
// loads unknown ids from st.
func WithStore(st Store) Option {
	return func(m *Manager) { m.store = st }
}

// WithCacheSize bounds the number of in-memory sessions. Panics if n < 1.
func WithCacheSize(n int) Option {
	if n < 1 {
		panic("session: cache size must be positive")
	}
	return func(m *Manager) { m.size = n }
}

// WithLogger sets the logger for session lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = logger.OrNop(l) }
}

// WithMetrics reports the active-session gauge and passes r to every timeline.
func WithMetrics(r *metrics.Recorder) Option {
	return func(m *Manager) { m.rec = r }
}

// WithTimelineOptions adds opts to every timeline the Manager builds.
func WithTimelineOptions(opts ...timeline.Option) Option {
	return func(m *Manager) { m.topts = append(m.topts, opts...) }
}

// Manager owns many sessions. It is safe for concurrent use; calls on
// the same session are serialized, calls on different sessions are not.
type Manager struct {
	store Store
	size  int
	log   *zap.Logger
	rec   *metrics.Recorder
	topts []timeline.Option
	now   func() time.Time

	// loadMu serializes cache misses so one id is never loaded twice.
	loadMu sync.Mutex
	cache  *lru.Cache[string, *entry]
	closed bool
	mu     sync.RWMutex
}

// NewManager builds a Manager.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		size: DefaultCacheSize,
		log:  zap.NewNop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	m.log = m.log.With(zap.String("component", logger.ComponentSession))

	cache, err := lru.NewWithEvict[string, *entry](m.size, m.onEvict)
	if err != nil {
		return nil, fmt.Errorf("session: new cache: %w", err)
	}
	m.cache = cache

	return m, nil
}

// onEvict writes a session leaving the cache to the store.
func (m *Manager) onEvict(id string, e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return
	}
	if m.store == nil {
		m.log.Warn("session evicted without a store", zap.String("session_id", id))
		return
	}
	if err := m.store.Save(context.Background(), m.record(e)); err != nil {
		m.log.Error("persist evicted session", zap.String("session_id", id), zap.Error(err))
		return
	}
	m.log.Debug("session evicted", zap.String("session_id", id))
}

func (m *Manager) timelineOptions(locale string) []timeline.Option {
	opts := make([]timeline.Option, 0, len(m.topts)+2)
	opts = append(opts, timeline.WithLogger(m.log), timeline.WithMetrics(m.rec))
	opts = append(opts, m.topts...)
	if locale == "" {
		return opts
	}
	tag, err := notation.ParseLocale(locale)
	if err != nil {
		m.log.Warn("unknown session locale", zap.String("locale", locale), zap.Error(err))
		return opts
	}
	ex, err := notation.NewExplainer(tag)
	if err != nil {
		m.log.Warn("build explainer", zap.Stringer("locale", tag), zap.Error(err))
		return opts
	}

	return append(opts, timeline.WithExplainer(ex))
}

// Create starts a session on initial whose explanations use locale
// (language.Und for the default) and returns its id.
func (m *Manager) Create(ctx context.Context, initial matrix.Augmented, locale language.Tag) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := m.checkOpen(); err != nil {
		return "", err
	}

	loc := ""
	if locale != language.Und {
		loc = locale.String()
	}
	mc, err := timeline.New(initial, m.timelineOptions(loc)...)
	if err != nil {
		return "", fmt.Errorf("session: create: %w", err)
	}

	e := &entry{id: uuid.NewString(), machine: mc, createdAt: m.now().UTC()}
	m.cache.Add(e.id, e)
	m.rec.SessionsActive(m.cache.Len())
	m.log.Info("session created",
		zap.String("session_id", e.id),
		zap.Int("rows", initial.Rows()),
		zap.Int("cols", initial.Cols()))

	return e.id, nil
}

// Do runs fn on the session's timeline while holding the session lock.
// fn must not retain the Machine after it returns.
func (m *Manager) Do(ctx context.Context, id string, fn func(*timeline.Machine) error) error {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return fn(e.machine)
}

// Get returns a copy of the session's history.
func (m *Manager) Get(ctx context.Context, id string) (timeline.History, error) {
	var h timeline.History
	err := m.Do(ctx, id, func(mc *timeline.Machine) error {
		h = mc.State()
		return nil
	})

	return h, err
}

// Snapshot returns the session's persisted form without writing it.
func (m *Manager) Snapshot(ctx context.Context, id string) (Record, error) {
	e, err := m.lookup(ctx, id)
	if err != nil {
		return Record{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return m.record(e), nil
}

// Save writes the session to the store.
func (m *Manager) Save(ctx context.Context, id string) error {
	if m.store == nil {
		return nil
	}
	r, err := m.Snapshot(ctx, id)
	if err != nil {
		return err
	}
	if err = m.store.Save(ctx, r); err != nil {
		return fmt.Errorf("session: save %s: %w", id, err)
	}
	m.log.Debug("session saved", zap.String("session_id", id), zap.Int("operations", len(r.Operations)))

	return nil
}

// Load replaces the in-memory session with the stored one, discarding
// unsaved changes.
func (m *Manager) Load(ctx context.Context, id string) error {
	if err := m.checkOpen(); err != nil {
		return err
	}
	if m.store == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	e, err := m.restore(ctx, id)
	if err != nil {
		return err
	}
	if old, ok := m.cache.Peek(id); ok {
		old.mu.Lock()
		old.deleted = true
		old.mu.Unlock()
		m.cache.Remove(id)
	}
	m.cache.Add(id, e)
	m.rec.SessionsActive(m.cache.Len())

	return nil
}

// Delete forgets the session in memory and in the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	if err := m.checkOpen(); err != nil {
		return err
	}

	// Held until the store row is gone so a concurrent miss cannot
	// restore the session in between.
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if e, ok := m.cache.Peek(id); ok {
		e.mu.Lock()
		e.deleted = true
		e.mu.Unlock()
		m.cache.Remove(id)
	}
	m.rec.SessionsActive(m.cache.Len())
	if m.store == nil {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("session: delete %s: %w", id, err)
	}
	m.log.Info("session deleted", zap.String("session_id", id))

	return nil
}

// Len is the number of sessions held in memory.
func (m *Manager) Len() int { return m.cache.Len() }

// Close persists every in-memory session and empties the cache.
// Later calls return ErrClosed.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	n := m.cache.Len()
	m.cache.Purge()
	m.rec.SessionsActive(0)
	m.log.Info("session manager closed", zap.Int("flushed", n))

	return nil
}

func (m *Manager) checkOpen() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}

	return nil
}

// lookup returns the cached entry or loads it from the store.
func (m *Manager) lookup(ctx context.Context, id string) (*entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	if e, ok := m.cache.Get(id); ok {
		return e, nil
	}
	if m.store == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()
	if e, ok := m.cache.Get(id); ok {
		return e, nil
	}
	e, err := m.restore(ctx, id)
	if err != nil {
		return nil, err
	}
	m.cache.Add(id, e)
	m.rec.SessionsActive(m.cache.Len())

	return e, nil
}

// restore reads and replays a stored session.
func (m *Manager) restore(ctx context.Context, id string) (*entry, error) {
	r, err := m.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("session: load %s: %w", id, err)
	}
	mc, err := timeline.Replay(r.Initial, r.Operations, r.Cursor, m.timelineOptions(r.Locale)...)
	if err != nil {
		return nil, fmt.Errorf("session: replay %s: %w", id, err)
	}
	m.log.Debug("session restored", zap.String("session_id", id), zap.Int("operations", len(r.Operations)))

	return &entry{id: id, machine: mc, createdAt: r.CreatedAt}, nil
}

// record builds the persisted form of e. The caller holds e.mu.
func (m *Manager) record(e *entry) Record {
	mc := e.machine

	return Record{
		ID:         e.id,
		Initial:    mc.Initial(),
		Operations: mc.Operations(),
		Cursor:     mc.Position(),
		Locale:     mc.Explainer().Locale().String(),
		CreatedAt:  e.createdAt,
		UpdatedAt:  m.now().UTC(),
	}
}
