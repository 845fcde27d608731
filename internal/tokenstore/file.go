package tokenstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aiutodesk/desk/internal/errors"
)

const plainFileName = "auth_token.json"

// FileStore persists the bearer token as a plain 0600 JSON file.
// Best-effort backing for environments where the sealed store cannot
// operate; the on-disk contract is otherwise identical.
type FileStore struct {
	path string
}

type tokenFile struct {
	Token string `json:"token"`
}

// NewFileStore creates a plain file store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, plainFileName)}
}

// SetToken persists the token, replacing any previous value.
func (s *FileStore) SetToken(ctx context.Context, token string) error {
	data, err := json.MarshalIndent(tokenFile{Token: token}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to encode token", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeTokenWriteFailed, "failed to persist token", err)
	}
	return nil
}

// GetToken returns the persisted token, or ("", nil) if none is stored.
func (s *FileStore) GetToken(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeTokenReadFailed, "failed to read token", err)
	}

	var file tokenFile
	if err := json.Unmarshal(data, &file); err != nil {
		return "", errors.Wrap(errors.ErrCodeTokenReadFailed, "corrupt token file", err)
	}
	return file.Token, nil
}

// DeleteToken removes the persisted token. Idempotent.
func (s *FileStore) DeleteToken(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeTokenDeleteFailed, "failed to delete token", err)
	}
	return nil
}
