// Package session holds the process-wide authentication state and
// orchestrates the gateway operations that move it between states.
//
// The store is an explicit, injectable container: construct one per process
// (or per test) and pass it where it is needed. Operations assume a single
// in-flight auth operation at a time; the loading flag is the caller's
// signal to hold further operations, not a lock; concurrent calls are
// last-write-wins on the state fields. A mutex guards individual field
// updates so snapshots are internally consistent.
package session

import (
	"context"
	"sync"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/platform"
	"github.com/aiutodesk/desk/internal/tokenstore"
)

// Status is the session state machine position.
type Status string

const (
	// StatusUnauthenticated means no valid credential is held.
	StatusUnauthenticated Status = "unauthenticated"
	// StatusAuthenticating means a login or logout operation is in flight.
	StatusAuthenticating Status = "authenticating"
	// StatusAuthenticated means a token is held and not known-invalid.
	StatusAuthenticated Status = "authenticated"
	// StatusRestoring means the startup session-restore is in flight.
	StatusRestoring Status = "restoring"
)

// Snapshot is one consistent view of the session state.
type Snapshot struct {
	Status        Status
	User          *platform.User
	Token         string
	Authenticated bool
	Loading       bool
	LastError     string
}

// Gateway is the subset of the platform gateway the session store drives.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*platform.LoginResponse, error)
	Signup(ctx context.Context, req platform.SignupRequest) (*platform.User, error)
	CurrentUser(ctx context.Context) (*platform.User, error)
}

// Listener receives a state snapshot after every transition.
type Listener func(Snapshot)

// Store is the process-wide session state container.
type Store struct {
	mu        sync.Mutex
	gateway   Gateway
	tokens    tokenstore.Store
	logger    *log.Logger
	state     Snapshot
	listeners []Listener
}

// New creates a session store in the Unauthenticated state.
func New(gateway Gateway, tokens tokenstore.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		gateway: gateway,
		tokens:  tokens,
		logger:  logger,
		state:   Snapshot{Status: StatusUnauthenticated},
	}
}

// Subscribe registers a listener notified after every state transition.
// Listeners run synchronously on the operation's goroutine.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// update applies fn to the state under the lock and notifies listeners
// with the resulting snapshot.
func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.state)
	s.state.Authenticated = s.state.Token != ""
	snapshot := s.state
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// Login authenticates with email and password. On success the session is
// Authenticated with user and token; on failure it returns to
// Unauthenticated with LastError set and the failure is re-raised.
func (s *Store) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		err := errors.New(errors.ErrCodeMissingField, "email and password are required")
		s.update(func(st *Snapshot) {
			st.LastError = userMessage(err)
		})
		return err
	}

	s.update(func(st *Snapshot) {
		st.Status = StatusAuthenticating
		st.Loading = true
		st.LastError = ""
	})

	resp, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		s.update(func(st *Snapshot) {
			st.Status = StatusUnauthenticated
			st.User = nil
			st.Token = ""
			st.Loading = false
			st.LastError = userMessage(err)
		})
		return err
	}

	s.update(func(st *Snapshot) {
		st.Status = StatusAuthenticated
		st.User = &resp.User
		st.Token = resp.AccessToken
		st.Loading = false
	})
	return nil
}

// Signup registers a new account. It never mutates the authenticated flag,
// token, or user, even on success: login is a separate, deliberate step.
func (s *Store) Signup(ctx context.Context, req platform.SignupRequest) (*platform.User, error) {
	s.update(func(st *Snapshot) {
		st.Loading = true
		st.LastError = ""
	})

	user, err := s.gateway.Signup(ctx, req)
	if err != nil {
		s.update(func(st *Snapshot) {
			st.Loading = false
			st.LastError = userMessage(err)
		})
		return nil, err
	}

	s.update(func(st *Snapshot) {
		st.Loading = false
	})
	return user, nil
}

// Logout clears the token and user unconditionally, regardless of whether
// the persisted token could be removed. A storage failure is surfaced after
// the in-memory state is already Unauthenticated.
func (s *Store) Logout(ctx context.Context) error {
	s.update(func(st *Snapshot) {
		st.Status = StatusAuthenticating
		st.Loading = true
		st.LastError = ""
	})

	err := s.tokens.DeleteToken(ctx)

	s.update(func(st *Snapshot) {
		st.Status = StatusUnauthenticated
		st.User = nil
		st.Token = ""
		st.Loading = false
		if err != nil {
			st.LastError = userMessage(err)
		}
	})
	return err
}

// Restore re-establishes the session from a persisted token at process
// start. A present token optimistically authenticates (token-only), then
// the user profile is hydrated; an authentication failure during hydration
// purges the token and demotes to Unauthenticated. Other hydration
// failures keep the optimistic session, with the error recorded.
func (s *Store) Restore(ctx context.Context) error {
	s.update(func(st *Snapshot) {
		st.Status = StatusRestoring
		st.Loading = true
		st.LastError = ""
	})

	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		// Storage failure is non-fatal: proceed as unauthenticated.
		s.logger.WithError(err).Warn("token read failed during session restore")
		token = ""
	}

	if token == "" {
		s.update(func(st *Snapshot) {
			st.Status = StatusUnauthenticated
			st.Loading = false
		})
		return nil
	}

	s.update(func(st *Snapshot) {
		st.Status = StatusAuthenticated
		st.Token = token
	})

	user, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		if errors.IsAuthentication(err) {
			// The transport has already evicted the persisted token;
			// make sure nothing lingers and demote.
			if delErr := s.tokens.DeleteToken(ctx); delErr != nil {
				s.logger.WithError(delErr).Warn("failed to purge rejected token")
			}
			s.update(func(st *Snapshot) {
				st.Status = StatusUnauthenticated
				st.User = nil
				st.Token = ""
				st.Loading = false
				st.LastError = userMessage(err)
			})
			return err
		}

		// Transient failure: stay optimistic with the token-only session.
		s.logger.WithError(err).Warn("profile hydration failed, keeping restored session")
		s.update(func(st *Snapshot) {
			st.Loading = false
			st.LastError = userMessage(err)
		})
		return nil
	}

	s.update(func(st *Snapshot) {
		st.User = user
		st.Loading = false
	})
	return nil
}

// ClearError resets the last error message.
func (s *Store) ClearError() {
	s.update(func(st *Snapshot) {
		st.LastError = ""
	})
}

// userMessage converts an error into the displayable message stored in
// LastError.
func userMessage(err error) string {
	switch {
	case errors.HasCode(err, errors.ErrCodeInvalidCredentials):
		return "Invalid email or password"
	case errors.IsAuthentication(err):
		return "Session expired, please log in again"
	case errors.IsConflict(err):
		return "This email is already registered"
	case errors.HasCode(err, errors.ErrCodeTenantNotFound):
		return "Organization not found, check the ID"
	case errors.IsValidation(err):
		return "Invalid data, check the fields"
	case errors.IsNetwork(err):
		return "Cannot reach the server"
	default:
		return err.Error()
	}
}
