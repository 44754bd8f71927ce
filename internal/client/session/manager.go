package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/phishwatch/internal/client/credentials"
	"github.com/dmitrijs2005/phishwatch/internal/common"
	"github.com/dmitrijs2005/phishwatch/internal/logging"
)

// Session is the derived authentication state. LoggedIn holds exactly
// when a credential is stored, decodes, and has not expired.
type Session struct {
	LoggedIn  bool
	Role      Role
	Subject   string
	Username  string
	ExpiresAt time.Time
}

func (s Session) IsAdmin() bool {
	return s.LoggedIn && s.Role.IsAdmin()
}

// DisplayName is the login name, falling back to the token subject.
func (s Session) DisplayName() string {
	if s.Username != "" {
		return s.Username
	}
	return s.Subject
}

// userStore is implemented by stores that can keep the login name next to
// the credential in one write.
type userStore interface {
	SetWithUser(ctx context.Context, token, username string) error
	Username(ctx context.Context) (string, error)
}

type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager is the single owner of session state. It is safe for concurrent
// use. Observers registered with Subscribe run synchronously after each
// transition and must not call SetAuth, SignIn or Invalidate.
type Manager struct {
	// transMu serializes transitions with their store writes, so the
	// stored credential always matches the committed session.
	transMu sync.Mutex
	mu      sync.Mutex
	store   credentials.Store
	log     logging.Logger
	now     func() time.Time
	token   string
	current Session

	obsMu     sync.Mutex
	observers map[int]func(Session)
	nextObsID int
}

// NewManager restores the session from store. An undecodable or expired
// stored credential is cleared and the manager starts logged out.
func NewManager(ctx context.Context, store credentials.Store, log logging.Logger, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:     store,
		log:       log.With("component", "session"),
		now:       time.Now,
		observers: make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(m)
	}

	token, err := store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	if token == "" {
		return m, nil
	}

	claims, err := m.check(token)
	if err != nil {
		m.log.Warn(ctx, "discarding stored credential", "reason", err)
		m.clearStore(ctx)
		return m, nil
	}

	username := ""
	if us, ok := store.(userStore); ok {
		if username, err = us.Username(ctx); err != nil {
			m.log.Warn(ctx, "failed to read stored username", "error", err)
		}
	}

	m.token = token
	m.current = loggedIn(claims, username)
	return m, nil
}

func loggedIn(c Claims, username string) Session {
	return Session{LoggedIn: true, Role: c.Role, Subject: c.Subject, Username: username, ExpiresAt: c.ExpiresAt}
}

func (m *Manager) check(token string) (Claims, error) {
	claims, err := Decode(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.Expired(m.now()) {
		return Claims{}, common.ErrTokenExpired
	}
	return claims, nil
}

// SetAuth installs token as the current credential. An empty token logs
// out. A token that does not decode or is already expired logs out and
// returns common.ErrInvalidToken or common.ErrTokenExpired.
func (m *Manager) SetAuth(ctx context.Context, token string) error {
	return m.SignIn(ctx, token, "")
}

// SignIn is SetAuth that also remembers the login name.
func (m *Manager) SignIn(ctx context.Context, token, username string) error {
	if token == "" {
		m.logout(ctx, "logout")
		return nil
	}

	claims, err := m.check(token)
	if err != nil {
		m.logout(ctx, err.Error())
		return err
	}

	m.transMu.Lock()
	if err := m.persist(ctx, token, username); err != nil {
		m.transMu.Unlock()
		return err
	}

	m.mu.Lock()
	m.token = token
	next := loggedIn(claims, username)
	m.current = next
	m.mu.Unlock()
	m.transMu.Unlock()

	m.log.Info(ctx, "session started", "role", next.Role, "subject", next.Subject)
	m.notify(next)
	return nil
}

// persist writes token and username together when the store supports it,
// so an empty username also drops a previously saved one.
func (m *Manager) persist(ctx context.Context, token, username string) error {
	if us, ok := m.store.(userStore); ok {
		if err := us.SetWithUser(ctx, token, username); err != nil {
			return fmt.Errorf("store credential: %w", err)
		}
		return nil
	}
	if err := m.store.Set(ctx, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// Current returns the session, first expiring it if its deadline passed.
func (m *Manager) Current(ctx context.Context) Session {
	m.mu.Lock()
	s := m.current
	expired := s.LoggedIn && !s.ExpiresAt.IsZero() && !m.now().Before(s.ExpiresAt)
	m.mu.Unlock()

	if expired {
		m.logout(ctx, common.ErrTokenExpired.Error())
		return Session{}
	}
	return s
}

// Token returns the bearer credential, or "" when logged out.
func (m *Manager) Token(ctx context.Context) string {
	if !m.Current(ctx).LoggedIn {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Invalidate logs out because the backend rejected the credential.
func (m *Manager) Invalidate(ctx context.Context, reason string) {
	m.logout(ctx, reason)
}

// Subscribe registers fn for session transitions. The returned function
// removes the subscription.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	m.obsMu.Lock()
	id := m.nextObsID
	m.nextObsID++
	m.observers[id] = fn
	m.obsMu.Unlock()

	return func() {
		m.obsMu.Lock()
		delete(m.observers, id)
		m.obsMu.Unlock()
	}
}

func (m *Manager) logout(ctx context.Context, reason string) {
	m.transMu.Lock()
	m.mu.Lock()
	was := m.current
	m.current = Session{}
	m.token = ""
	m.mu.Unlock()

	m.clearStore(ctx)
	m.transMu.Unlock()

	if was.LoggedIn {
		m.log.Info(ctx, "session ended", "reason", reason)
		m.notify(Session{})
	}
}

func (m *Manager) clearStore(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil && !errors.Is(err, context.Canceled) {
		m.log.Error(ctx, "failed to clear credential", "error", err)
	}
}

func (m *Manager) notify(s Session) {
	m.obsMu.Lock()
	fns := make([]func(Session), 0, len(m.observers))
	for _, fn := range m.observers {
		fns = append(fns, fn)
	}
	m.obsMu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
