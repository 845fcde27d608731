package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiutodesk/desk/internal/errors"
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/tokenstore"
)

func newTestClient(t *testing.T, serverURL string, timeout time.Duration) (*Client, tokenstore.Store) {
	t.Helper()
	tokens := tokenstore.NewFileStore(t.TempDir())
	client := New(Config{
		BaseURL: serverURL,
		Timeout: timeout,
		Tokens:  tokens,
		Logger:  log.Default(),
	})
	return client, tokens
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, tokens := newTestClient(t, server.URL, 0)
	require.NoError(t, tokens.SetToken(context.Background(), "T1"))

	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil))
	assert.Equal(t, "Bearer T1", gotAuth)
}

func TestClient_NoTokenSendsNoHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 0)

	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/tenants", nil, nil))
	assert.Empty(t, gotAuth)
	assert.False(t, hasAuth)
}

func TestClient_UnauthorizedEvictsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"statusCode":401,"message":"Unauthorized"}`))
	}))
	defer server.Close()

	client, tokens := newTestClient(t, server.URL, 0)
	require.NoError(t, tokens.SetToken(context.Background(), "stale"))

	err := client.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsAuthentication(err))

	// The inbound interceptor must have emptied the store before the error
	// was surfaced.
	token, getErr := tokens.GetToken(context.Background())
	require.NoError(t, getErr)
	assert.Empty(t, token)
}

func TestClient_UnauthorizedWithoutTokenIsStillEvictedCleanly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, tokens := newTestClient(t, server.URL, 0)

	err := client.Do(context.Background(), http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com"}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsAuthentication(err))

	token, getErr := tokens.GetToken(context.Background())
	require.NoError(t, getErr)
	assert.Empty(t, token)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errors.ErrorCode
		wantMsg  string
	}{
		{"bad request", 400, `{"statusCode":400,"message":"email must be an email"}`, errors.ErrCodeInvalidRequest, "email must be an email"},
		{"validation array message", 400, `{"statusCode":400,"message":["name should not be empty","password too short"]}`, errors.ErrCodeInvalidRequest, "name should not be empty; password too short"},
		{"unauthorized", 401, `{"statusCode":401,"message":"Unauthorized"}`, errors.ErrCodeTokenRejected, "Unauthorized"},
		{"not found", 404, `{"statusCode":404,"message":"Tenant not found"}`, errors.ErrCodeResourceNotFound, "Tenant not found"},
		{"conflict", 409, `{"statusCode":409,"message":"Email already registered"}`, errors.ErrCodeEmailRegistered, "Email already registered"},
		{"server error", 500, `not json`, errors.ErrCodeRequestFailed, "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := newTestClient(t, server.URL, 0)
			err := client.Do(context.Background(), http.MethodGet, "/x", nil, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Code(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	// Connect to a closed port.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, _ := newTestClient(t, server.URL, 0)
	err := client.Do(context.Background(), http.MethodGet, "/tenants", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
}

func TestClient_Timeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	client, _ := newTestClient(t, server.URL, 50*time.Millisecond)
	err := client.Do(context.Background(), http.MethodGet, "/tenants", nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRequestTimeout, errors.Code(err))
}

func TestClient_DecodesTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"name":"A"}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 0)

	var out struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, &out))
	assert.Equal(t, 1, out.ID)
	assert.Equal(t, "A", out.Name)
}

func TestClient_SendsRequestID(t *testing.T) {
	var first, second string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first == "" {
			first = r.Header.Get("X-Request-ID")
		} else {
			second = r.Header.Get("X-Request-ID")
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL, 0)
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil))
	require.NoError(t, client.Do(context.Background(), http.MethodGet, "/x", nil, nil))

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}
