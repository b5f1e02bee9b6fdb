package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vantagedating/adminctl/internal/errors"
)

type credentialsFile struct {
	Token   string    `json:"adminToken"`
	SavedAt time.Time `json:"saved_at"`
}

// FileStore keeps the token in a JSON file readable only by its owner.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the credentials file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the token. A missing file or an empty token is ErrTokenNotFound.
func (f *FileStore) Load(context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrTokenNotFound
		}
		return "", errors.Wrap(errors.ErrCodeStoreRead, fmt.Sprintf("failed to read %s", f.path), err)
	}

	var creds credentialsFile
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", errors.Wrap(errors.ErrCodeStoreRead, fmt.Sprintf("failed to parse %s", f.path), err).
			WithSuggestion("Delete the file or run 'adminctl auth logout'")
	}
	if creds.Token == "" {
		return "", ErrTokenNotFound
	}
	return creds.Token, nil
}

// Save writes the token atomically with mode 0600.
func (f *FileStore) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.NewInputRequiredError("token")
	}

	data, err := json.MarshalIndent(credentialsFile{Token: token, SavedAt: f.now().UTC()}, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to encode credentials", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, fmt.Sprintf("failed to create %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to create temporary credentials file", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to write credentials", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() //nolint:errcheck,gosec // chmod error takes precedence
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to restrict credentials file", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, "failed to write credentials", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(errors.ErrCodeStoreWrite, fmt.Sprintf("failed to replace %s", f.path), err)
	}
	return nil
}

// Delete removes the credentials file.
func (f *FileStore) Delete(context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreDelete, fmt.Sprintf("failed to remove %s", f.path), err)
	}
	return nil
}
