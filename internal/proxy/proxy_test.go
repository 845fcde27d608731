package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProxy(t *testing.T, upstream string) *Server {
	t.Helper()
	server, err := NewServer(Config{Address: ":0", Upstream: upstream})
	require.NoError(t, err)
	return server
}

func TestServer_ForwardsRequests(t *testing.T) {
	var gotMethod, gotPath, gotBody, gotAuth string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody = string(body)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer upstream.Close()

	proxy := httptest.NewServer(newTestProxy(t, upstream.URL).Handler())
	defer proxy.Close()

	req, err := http.NewRequest(http.MethodPost, proxy.URL+"/auth/login", strings.NewReader(`{"email":"a@b.com"}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer T1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/auth/login", gotPath)
	assert.Equal(t, `{"email":"a@b.com"}`, gotBody)
	assert.Equal(t, "Bearer T1", gotAuth)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestServer_CORSHeaders(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	proxy := httptest.NewServer(newTestProxy(t, upstream.URL).Handler())
	defer proxy.Close()

	resp, err := http.Get(proxy.URL + "/tenants")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestServer_Preflight(t *testing.T) {
	upstreamHit := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamHit = true
	}))
	defer upstream.Close()

	proxy := httptest.NewServer(newTestProxy(t, upstream.URL).Handler())
	defer proxy.Close()

	req, err := http.NewRequest(http.MethodOptions, proxy.URL+"/auth/login", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodOptions)
	assert.False(t, upstreamHit, "preflight must be answered by the proxy itself")
}

func TestNewServer_RejectsRelativeUpstream(t *testing.T) {
	_, err := NewServer(Config{Address: ":0", Upstream: "localhost:3000"})
	require.Error(t, err)

	_, err = NewServer(Config{Address: ":0", Upstream: ""})
	require.Error(t, err)
}
