package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore keeps credentials in a YAML file readable only by the owner:
//
//	http://localhost:5000:
//	  adminToken: eyJhbGciOi...
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultFilePath is storefront/credentials.yaml under the user config dir.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "storefront", "credentials.yaml"), nil
}

// NewFileStore uses path, or DefaultFilePath when path is empty. The file
// is created on first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultFilePath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(_ context.Context, origin, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := data[origin][key]
	return v, ok, nil
}

func (f *FileStore) Set(_ context.Context, origin, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	if data[origin] == nil {
		data[origin] = map[string]string{}
	}
	data[origin][key] = value
	return f.write(data)
}

func (f *FileStore) Delete(_ context.Context, origin, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := data[origin][key]; !ok {
		return nil
	}
	delete(data[origin], key)
	if len(data[origin]) == 0 {
		delete(data, origin)
	}
	return f.write(data)
}

func (f *FileStore) read() (map[string]map[string]string, error) {
	data := map[string]map[string]string{}
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", f.path, err)
	}
	if data == nil {
		data = map[string]map[string]string{}
	}
	return data, nil
}

// write replaces the file atomically via a temp file in the same dir.
func (f *FileStore) write(data map[string]map[string]string) error {
	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".credentials-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}
