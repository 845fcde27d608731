package tokenstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"github.com/aiutodesk/desk/internal/errors"
)

const (
	identityFileName = "token.key"
	sealedFileName   = "token.age"
)

// SealedStore persists the bearer token encrypted with an age x25519
// identity. The identity lives beside the ciphertext in a 0600 keyfile;
// this protects the token from casual reads and backup leaks, which is the
// most secure mechanism available without an OS keychain dependency.
type SealedStore struct {
	identity  *age.X25519Identity
	tokenPath string
}

// NewSealedStore loads the age identity from dir, generating one on first
// use. It fails when the directory cannot hold the keyfile, in which case
// the caller should fall back to a plain FileStore.
func NewSealedStore(dir string) (*SealedStore, error) {
	identity, err := loadOrCreateIdentity(filepath.Join(dir, identityFileName))
	if err != nil {
		return nil, err
	}

	return &SealedStore{
		identity:  identity,
		tokenPath: filepath.Join(dir, sealedFileName),
	}, nil
}

// SetToken encrypts and persists the token. Last write wins.
func (s *SealedStore) SetToken(ctx context.Context, token string) error {
	var ciphertext bytes.Buffer
	w, err := age.Encrypt(&ciphertext, s.identity.Recipient())
	if err != nil {
		return errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to seal token", err)
	}
	if _, err := io.WriteString(w, token); err != nil {
		return errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to seal token", err)
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to seal token", err)
	}

	if err := os.WriteFile(s.tokenPath, ciphertext.Bytes(), 0600); err != nil {
		return errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to persist token", err)
	}
	return nil
}

// GetToken decrypts and returns the persisted token, or ("", nil) when no
// token is stored.
func (s *SealedStore) GetToken(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.tokenPath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTokenReadFailed, "failed to read token", err)
	}

	r, err := age.Decrypt(bytes.NewReader(data), s.identity)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTokenReadFailed, "failed to unseal token", err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTokenReadFailed, "failed to unseal token", err)
	}
	return string(plaintext), nil
}

// DeleteToken removes the persisted token. Idempotent.
func (s *SealedStore) DeleteToken(ctx context.Context) error {
	if err := os.Remove(s.tokenPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeTokenDeleteFailed, "failed to delete token", err)
	}
	return nil
}

func loadOrCreateIdentity(path string) (*age.X25519Identity, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		identity, parseErr := age.ParseX25519Identity(strings.TrimSpace(string(data)))
		if parseErr != nil {
			return nil, errors.Wrap(errors.ErrCodeTokenReadFailed, "corrupt token keyfile", parseErr)
		}
		return identity, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeTokenReadFailed, "failed to read token keyfile", err)
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to generate token keyfile", err)
	}
	if err := os.WriteFile(path, []byte(identity.String()+"\n"), 0600); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to write token keyfile", err)
	}
	return identity, nil
}
