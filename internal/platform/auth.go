package platform

import (
	"context"
	"net/http"
	"time"

	"github.com/aiutodesk/desk/internal/errors"
)

// User is the authenticated user record issued by the server.
// Password material is never present in this representation.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	TenantID  string    `json:"tenantId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the login response body.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// SignupRequest is the registration request body. Registration is always
// scoped to exactly one tenant.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	TenantID string `json:"tenantId"`
}

// meResponse is the /auth/me envelope.
type meResponse struct {
	User User `json:"user"`
}

// Login authenticates with email and password. On success the returned
// token is persisted as a side effect; a persistence failure is logged and
// does not fail the login (the session simply won't survive the process).
func (g *Gateway) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := g.http.Do(ctx, http.MethodPost, "/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		if errors.IsAuthentication(err) {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if resp.AccessToken == "" {
		return nil, errors.New(errors.ErrCodeRequestFailed, "login response carried no access token")
	}

	if err := g.tokens.SetToken(ctx, resp.AccessToken); err != nil {
		g.logger.WithError(err).Warn("failed to persist access token, session will not survive restart")
	}

	g.logger.Debug("login succeeded", "user_id", resp.User.ID)
	return &resp, nil
}

// Signup registers a new account scoped to tenantID. It never persists a
// token and never authenticates the session: the new account must be logged
// in separately.
func (g *Gateway) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	var user User
	err := g.http.Do(ctx, http.MethodPost, "/auth/signup", req, &user)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewTenantNotFoundError(req.TenantID)
		}
		return nil, err
	}

	g.logger.Debug("signup succeeded", "user_id", user.ID, "tenant_id", req.TenantID)
	return &user, nil
}

// CurrentUser fetches the authenticated user via the transport-attached
// token. On a 401 the transport has already evicted the local token before
// this returns, so a subsequent session check reports unauthenticated
// instead of retrying a known-bad credential.
func (g *Gateway) CurrentUser(ctx context.Context) (*User, error) {
	var resp meResponse
	if err := g.http.Do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
