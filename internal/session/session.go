// package session owns the process-wide authenticated session
package session

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/store"
	"golang.org/x/oauth2"
)

// StorageKey is the store key the session record persists under.
const StorageKey = "session"

// State enumerates the session states.
//
// Loading is a real state, not a disguised Absent: consumers must defer
// auth-dependent decisions until resolution lands.
type State int

const (
	// Loading means startup resolution has not completed yet.
	Loading State = iota
	// Absent means resolution completed and nobody is signed in.
	Absent
	// Present means a user is signed in.
	Present
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Absent:
		return "resolved-absent"
	case Present:
		return "resolved-present"
	default:
		return "unknown"
	}
}

// Subscriber receives every session transition. The identity is nil unless
// the new state is Present.
type Subscriber func(State, *models.Identity)

// record is what persists between runs: the refresh token plus enough of the
// identity to restore the signed-in display without a profile fetch.
type record struct {
	RefreshToken string          `json:"refresh_token"`
	Identity     models.Identity `json:"identity"`
}

// Manager is the session state machine.
//
// Exactly one Manager exists per process, constructed at startup and handed
// to consumers by reference. State starts at Loading and moves to a resolved
// state exactly once via Resolve; afterwards only Login, Signup, and Logout
// transition it. A mutex guards transitions because startup resolution runs
// off the UI loop.
type Manager struct {
	identity services.Identity
	store    store.Store
	logger   *log.Logger

	mu       sync.Mutex
	state    State
	user     *models.Identity
	token    *oauth2.Token
	inFlight bool
	resolved bool
	subs     []Subscriber
}

// NewManager creates a session manager in the Loading state.
func NewManager(identity services.Identity, s store.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Manager{
		identity: identity,
		store:    s,
		logger:   logger,
		state:    Loading,
	}
}

// State returns the current session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the signed-in identity, or nil outside the Present state.
func (m *Manager) User() *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token returns the current session token, or nil outside the Present state.
func (m *Manager) Token() *oauth2.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Subscribe registers fn to be invoked on every subsequent state transition,
// including the startup resolution.
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Resolve performs the one-time startup resolution: exchange the stored
// refresh token (if any) for a fresh session. Moves Loading to Present or
// Absent and returns the resulting state. Subsequent calls are no-ops.
func (m *Manager) Resolve(ctx context.Context) State {
	m.mu.Lock()
	if m.resolved {
		state := m.state
		m.mu.Unlock()
		return state
	}
	m.resolved = true
	stored := m.loadRecord()
	m.mu.Unlock()

	if stored == nil || stored.RefreshToken == "" {
		return m.transition(Absent, nil, nil)
	}

	result, err := m.identity.Resolve(ctx, stored.RefreshToken)
	if err != nil {
		m.logger.Warnf("stored session could not be restored: %v", err)
		m.store.Delete(StorageKey)
		return m.transition(Absent, nil, nil)
	}

	// Token refresh responses carry the uid only; merge the profile fields
	// saved at sign-in time.
	user := stored.Identity
	if result.Identity.UID != "" {
		user.UID = result.Identity.UID
	}

	m.saveRecord(record{RefreshToken: result.Token.RefreshToken, Identity: user})
	return m.transition(Present, &user, result.Token)
}

// Login delegates to the identity provider and moves to Present on success.
// Failure retains the prior state and returns the classified error.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, email, password, m.identity.Login)
}

// Signup creates a new account and moves to Present on success.
func (m *Manager) Signup(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, email, password, m.identity.Signup)
}

type authFunc func(ctx context.Context, email, password string) (*services.AuthResult, error)

// authenticate serializes login/signup: a second call while one is pending
// is rejected rather than interleaved.
func (m *Manager) authenticate(ctx context.Context, email, password string, fn authFunc) error {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return shared.ErrAuthInFlight
	}
	m.inFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	result, err := fn(ctx, email, password)
	if err != nil {
		return err
	}

	m.saveRecord(record{RefreshToken: result.Token.RefreshToken, Identity: result.Identity})
	user := result.Identity
	m.transition(Present, &user, result.Token)
	return nil
}

// Adopt exchanges a refresh token obtained out of band (the browser-assisted
// login callback) for a session and moves to Present on success. Subject to
// the same in-flight serialization as Login and Signup.
func (m *Manager) Adopt(ctx context.Context, refreshToken string) error {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		return shared.ErrAuthInFlight
	}
	m.inFlight = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight = false
		m.mu.Unlock()
	}()

	result, err := m.identity.Resolve(ctx, refreshToken)
	if err != nil {
		return err
	}

	m.saveRecord(record{RefreshToken: result.Token.RefreshToken, Identity: result.Identity})
	user := result.Identity
	m.transition(Present, &user, result.Token)
	return nil
}

// Logout revokes the session with the provider and moves to Absent.
// A provider failure is surfaced and the prior state retained.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	var refreshToken string
	if m.token != nil {
		refreshToken = m.token.RefreshToken
	}
	m.mu.Unlock()

	if err := m.identity.Logout(ctx, refreshToken); err != nil {
		return err
	}

	m.store.Delete(StorageKey)
	m.transition(Absent, nil, nil)
	return nil
}

// transition applies the new state and notifies subscribers outside the lock.
func (m *Manager) transition(state State, user *models.Identity, token *oauth2.Token) State {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.token = token
	subs := make([]Subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	m.logger.Debugf("session state: %s", state)
	for _, fn := range subs {
		fn(state, user)
	}
	return state
}

func (m *Manager) loadRecord() *record {
	raw := m.store.Load(StorageKey)
	if raw == nil {
		return nil
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		// Corrupt session state degrades to signed out.
		return nil
	}
	return &rec
}

func (m *Manager) saveRecord(rec record) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	m.store.Save(StorageKey, raw)
}
