// Package platform is the AiutoDesk API gateway. It wraps the remote auth
// and tenant operations over the shared transport, translating wire shapes
// into domain types and persisting or evicting the bearer token as a side
// effect of the auth lifecycle.
//
// Canonical wire contract (the backend has shipped several revisions; these
// are the shapes this client speaks):
//
//	POST /auth/login   {email,password}              -> {access_token, user}
//	POST /auth/signup  {name,email,password,tenantId} -> user
//	GET  /auth/me                                     -> {user}
//	GET  /tenants                                     -> {data,total,page,limit}
package platform

import (
	"github.com/aiutodesk/desk/internal/log"
	"github.com/aiutodesk/desk/internal/tokenstore"
	"github.com/aiutodesk/desk/internal/transport"
)

// Gateway exposes the remote AiutoDesk operations.
type Gateway struct {
	http   *transport.Client
	tokens tokenstore.Store
	logger *log.Logger
}

// New creates a gateway over the shared transport. The token store receives
// the access token on successful login; eviction on 401 is the transport's
// job.
func New(http *transport.Client, tokens tokenstore.Store, logger *log.Logger) *Gateway {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Gateway{
		http:   http,
		tokens: tokens,
		logger: logger,
	}
}
