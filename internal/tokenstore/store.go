// Package tokenstore persists the single bearer token the CLI holds between
// invocations. Exactly one token exists at a time, under a fixed location in
// the user config directory.
//
// Two implementations share the Store contract: SealedStore encrypts the
// token at rest with an age x25519 identity, FileStore writes a plain 0600
// JSON file. Open selects between them by capability detection at startup;
// callers never branch on the backing themselves.
//
// Absence of a token is a valid state, not a failure: GetToken returns
// ("", nil) when nothing is stored, and DeleteToken is idempotent.
package tokenstore

import (
	"context"

	"github.com/aiutodesk/desk/internal/log"
)

// Store is the persistence contract for the bearer token.
//
// Last write wins. Implementations must distinguish absence (a valid,
// non-error state) from read/write failure, which is reported as a
// STORAGE-coded error.
type Store interface {
	// SetToken persists the token, replacing any previous value.
	SetToken(ctx context.Context, token string) error

	// GetToken returns the persisted token, or ("", nil) if none is stored.
	GetToken(ctx context.Context) (string, error)

	// DeleteToken removes the persisted token. Deleting an absent token
	// is not an error.
	DeleteToken(ctx context.Context) error
}

// Open returns the most secure store available in dir: a SealedStore when
// an age identity can be created or loaded there, otherwise a plain
// FileStore. The fallback is logged so the downgrade is visible.
func Open(dir string, logger *log.Logger) Store {
	sealed, err := NewSealedStore(dir)
	if err != nil {
		logger.WithError(err).Warn("sealed token store unavailable, falling back to plain file store")
		return NewFileStore(dir)
	}
	return sealed
}
