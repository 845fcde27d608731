package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/tokenstore"
	"github.com/aiutodesk/desk/internal/transport"
)

func newTestGateway(t *testing.T, handler http.Handler) (*Gateway, tokenstore.Store, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := tokenstore.NewFileStore(t.TempDir())
	client := transport.New(transport.Config{
		BaseURL: server.URL,
		Tokens:  tokens,
		Logger:  log.Default(),
	})
	return New(client, tokens, log.Default()), tokens, server
}

func TestGateway_Login_PersistsToken(t *testing.T) {
	gw, tokens, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "secret123", req.Password)

		w.Write([]byte(`{"access_token":"T1","user":{"id":1,"name":"A"}}`))
	}))

	resp, err := gw.Login(context.Background(), "a@b.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "T1", resp.AccessToken)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "A", resp.User.Name)

	token, err := tokens.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T1", token)
}

func TestGateway_Login_InvalidCredentials(t *testing.T) {
	gw, tokens, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"statusCode":401,"message":"Invalid credentials"}`))
	}))

	_, err := gw.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidCredentials, errors.Code(err))

	// Nothing persisted on failure.
	token, getErr := tokens.GetToken(context.Background())
	require.NoError(t, getErr)
	assert.Empty(t, token)
}

func TestGateway_Login_MalformedRequest(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode":400,"message":["email must be an email"]}`))
	}))

	_, err := gw.Login(context.Background(), "not-an-email", "x")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestGateway_Login_EmptyTokenInResponse(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":1}}`))
	}))

	_, err := gw.Login(context.Background(), "a@b.com", "secret123")
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
}

func TestGateway_Signup_ReturnsCreatedUser(t *testing.T) {
	gw, tokens, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)

		var req SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "6e976210-e9f5-4296-9087-bf1e6a8e320f", req.TenantID)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"name":"New User","email":"new@b.com","role":"user","status":"active"}`))
	}))

	user, err := gw.Signup(context.Background(), SignupRequest{
		Name:     "New User",
		Email:    "new@b.com",
		Password: "secret123",
		TenantID: "6e976210-e9f5-4296-9087-bf1e6a8e320f",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "user", user.Role)

	// Signup never persists a token.
	token, getErr := tokens.GetToken(context.Background())
	require.NoError(t, getErr)
	assert.Empty(t, token)
}

func TestGateway_Signup_DuplicateEmail(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"statusCode":409,"message":"Email already registered"}`))
	}))

	_, err := gw.Signup(context.Background(), SignupRequest{Email: "dup@b.com"})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))
}

func TestGateway_Signup_UnknownTenant(t *testing.T) {
	gw, _, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"statusCode":404,"message":"Tenant not found"}`))
	}))

	_, err := gw.Signup(context.Background(), SignupRequest{TenantID: "bogus"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTenantNotFound, errors.Code(err))
}

func TestGateway_CurrentUser(t *testing.T) {
	gw, tokens, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"user":{"id":1,"name":"A","email":"a@b.com"}}`))
	}))

	require.NoError(t, tokens.SetToken(context.Background(), "T1"))

	user, err := gw.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestGateway_CurrentUser_UnauthorizedEvictsToken(t *testing.T) {
	gw, tokens, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"statusCode":401,"message":"Unauthorized"}`))
	}))

	require.NoError(t, tokens.SetToken(context.Background(), "stale"))

	_, err := gw.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsAuthentication(err))

	token, getErr := tokens.GetToken(context.Background())
	require.NoError(t, getErr)
	assert.Empty(t, token)
}
