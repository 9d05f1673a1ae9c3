// Package session provides an in-memory session store for the wizard step
// handler. Sessions are identified by random UUIDs carried in a cookie and
// expire after an idle TTL. State lives in process memory only, so a restart
// or a second replica starts every journey over.
package session

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-datefield/pkg/wizard"
)

const DefaultCookieName = "datefield_session"

// Model is a single journey's key/value state. It implements wizard.Session.
// Map values are copied on the way in and out so hooks cannot mutate stored
// state behind the store's back.
type Model struct {
	mu   sync.RWMutex
	id   string
	data map[string]any
}

var _ wizard.Session = (*Model)(nil)

// NewModel returns an empty model with the supplied id.
func NewModel(id string) *Model {
	return &Model{id: id, data: make(map[string]any)}
}

// ID returns the session identifier.
func (m *Model) ID() string {
	return m.id
}

// Get returns a copy of the value stored under name.
func (m *Model) Get(name string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyValue(m.data[name])
}

// Set stores a copy of value under name. A nil value removes the entry.
func (m *Model) Set(name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value == nil {
		delete(m.data, name)
		return
	}
	m.data[name] = copyValue(value)
}

// Snapshot returns a shallow copy of every stored value.
func (m *Model) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.data))
	for key, value := range m.data {
		out[key] = copyValue(value)
	}
	return out
}

func copyValue(value any) any {
	switch v := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	case map[string]wizard.FieldError:
		out := make(map[string]wizard.FieldError, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = val
		}
		return out
	default:
		return value
	}
}

const (
	// DefaultTTL is how long an idle session survives.
	DefaultTTL = 30 * time.Minute
	// DefaultMaxSessions bounds the store; the least recently used session is
	// evicted to make room.
	DefaultMaxSessions = 10000
)

// Options configures a Store. A TTL or MaxSessions of zero or less disables
// that limit.
type Options struct {
	CookieName  string
	CookiePath  string
	Secure      bool
	TTL         time.Duration
	MaxSessions int

	// Now is the clock used for expiry.
	Now func() time.Time
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		CookieName:  DefaultCookieName,
		CookiePath:  "/",
		TTL:         DefaultTTL,
		MaxSessions: DefaultMaxSessions,
		Now:         time.Now,
	}
}

func WithCookieName(name string) OptionFn {
	return func(o *Options) {
		o.CookieName = name
	}
}

func WithCookiePath(path string) OptionFn {
	return func(o *Options) {
		o.CookiePath = path
	}
}

func WithSecure(secure bool) OptionFn {
	return func(o *Options) {
		o.Secure = secure
	}
}

func WithTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		o.TTL = ttl
	}
}

func WithMaxSessions(limit int) OptionFn {
	return func(o *Options) {
		o.MaxSessions = limit
	}
}

func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		o.Now = now
	}
}

// Store keeps session models in memory. Idle sessions expire after the TTL
// and are swept whenever a new session is created.
type Store struct {
	mu       sync.Mutex
	opts     Options
	sessions map[string]*Model
	seen     map[string]time.Time
}

// NewStore constructs an empty store.
func NewStore(fns ...OptionFn) *Store {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.CookieName) == "" {
		opts.CookieName = DefaultCookieName
	}
	if strings.TrimSpace(opts.CookiePath) == "" {
		opts.CookiePath = "/"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		opts:     opts,
		sessions: make(map[string]*Model),
		seen:     make(map[string]time.Time),
	}
}

// Create starts a new session, first dropping expired ones and, at capacity,
// the least recently used.
func (s *Store) Create() *Model {
	model := NewModel(uuid.NewString())
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Now()
	s.pruneLocked(now)
	if limit := s.opts.MaxSessions; limit > 0 {
		for len(s.sessions) >= limit {
			s.evictOldestLocked()
		}
	}
	s.sessions[model.id] = model
	s.seen[model.id] = now
	return model
}

// Lookup returns the session with id and marks it as used. Expired sessions
// are removed and reported as missing.
func (s *Store) Lookup(id string) (*Model, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	model, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.opts.Now()
	if s.expiredLocked(id, now) {
		s.deleteLocked(id)
		return nil, false
	}
	s.seen[id] = now
	return model, true
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	s.deleteLocked(id)
	s.mu.Unlock()
}

// Prune drops every expired session and returns how many were removed.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(s.opts.Now())
}

// Len reports the number of stored sessions, expired ones included until the
// next sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expiredLocked(id string, now time.Time) bool {
	if s.opts.TTL <= 0 {
		return false
	}
	return now.Sub(s.seen[id]) > s.opts.TTL
}

func (s *Store) pruneLocked(now time.Time) int {
	if s.opts.TTL <= 0 {
		return 0
	}
	removed := 0
	for id := range s.sessions {
		if s.expiredLocked(id, now) {
			s.deleteLocked(id)
			removed++
		}
	}
	return removed
}

func (s *Store) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, seen := range s.seen {
		if oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}
	if oldestID == "" {
		return
	}
	s.deleteLocked(oldestID)
}

func (s *Store) deleteLocked(id string) {
	delete(s.sessions, id)
	delete(s.seen, id)
}

// FromRequest returns the session named by the request cookie, creating one
// and setting the cookie when it is missing or unknown.
func (s *Store) FromRequest(w http.ResponseWriter, r *http.Request) (*Model, error) {
	if cookie, err := r.Cookie(s.opts.CookieName); err == nil {
		if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			if model, ok := s.Lookup(cookie.Value); ok {
				return model, nil
			}
		}
	}
	model := s.Create()
	cookie := &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    model.id,
		Path:     s.opts.CookiePath,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.opts.TTL > 0 {
		cookie.MaxAge = int(s.opts.TTL / time.Second)
	}
	http.SetCookie(w, cookie)
	return model, nil
}

// Resolver adapts the store to wizard.SessionFunc.
func (s *Store) Resolver() wizard.SessionFunc {
	return func(w http.ResponseWriter, r *http.Request) (wizard.Session, error) {
		return s.FromRequest(w, r)
	}
}
