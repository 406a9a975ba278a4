package tokenstore

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	tokenFile  = "auth_token"
	deviceFile = "device_id"
)

// Store is the durable credential storage for the client. A missing token
// is reported as an empty string, not an error.
type Store interface {
	Token() (string, error)
	Save(token string) error
	Clear() error
	DeviceID() (string, error)
}

// FileStore keeps the token and device id as single-value files under a
// state directory.
type FileStore struct {
	dir string
	log *log.Logger
	mu  sync.Mutex
}

func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("state directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	return &FileStore{
		dir: dir,
		log: logger,
	}, nil
}

func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Save persists the token. The sentinels "", "undefined" and "null" are
// silently ignored, leaving storage unchanged; they are stringified-absence
// bugs upstream, never valid credentials.
func (s *FileStore) Save(token string) error {
	if isSentinel(token) {
		s.log.Printf("refusing to save sentinel token %q", token)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}

	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(filepath.Join(s.dir, tokenFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}

	return nil
}

// DeviceID returns the stable identifier for this install, generating and
// persisting one on first use.
func (s *FileStore) DeviceID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, deviceFile)

	data, err := os.ReadFile(path)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("read device id: %w", err)
	}

	id := uuid.NewString()
	if err := os.WriteFile(path, []byte(id), 0o600); err != nil {
		return "", fmt.Errorf("write device id: %w", err)
	}

	return id, nil
}

func isSentinel(token string) bool {
	switch token {
	case "", "undefined", "null":
		return true
	}

	return false
}
