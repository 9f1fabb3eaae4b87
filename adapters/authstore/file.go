package authstore

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/notavoz/notavoz/domain/repositories"
)

const authFileName = "authorized_users.json"

// FileStore keeps the authorized user set in a JSON file. Good enough
// for single-instance deployments without a database; the file survives
// restarts inside the same deploy.
type FileStore struct {
	mu       sync.Mutex
	path     string
	password string
	logger   *zap.Logger
}

var _ repositories.Authorizer = (*FileStore)(nil)

type authFile struct {
	AuthorizedUsers []int64 `json:"authorized_users"`
}

// NewFileStore builds a file-backed authorizer rooted at dataDir.
func NewFileStore(dataDir, password string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:     filepath.Join(dataDir, authFileName),
		password: password,
		logger:   logger,
	}
}

// IsAuthorized reports whether userID already authenticated.
func (s *FileStore) IsAuthorized(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := users[userID]
	return ok, nil
}

// Authenticate compares password in constant time and, on success,
// persists userID as authorized.
func (s *FileStore) Authenticate(_ context.Context, userID int64, password string) (bool, error) {
	provided := strings.TrimSpace(password)
	if subtle.ConstantTimeCompare([]byte(provided), []byte(s.password)) != 1 {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	users[userID] = struct{}{}
	if err := s.save(users); err != nil {
		return false, err
	}
	return true, nil
}

// Revoke removes userID from the authorized set. Returns false when the
// user was not authorized in the first place.
func (s *FileStore) Revoke(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return false, err
	}
	if _, ok := users[userID]; !ok {
		return false, nil
	}
	delete(users, userID)
	if err := s.save(users); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) load() (map[int64]struct{}, error) {
	users := make(map[int64]struct{})

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return users, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var file authFile
	if err := json.Unmarshal(raw, &file); err != nil {
		// A corrupted file must not lock everyone out permanently.
		s.logger.Error("authorized users file is corrupted, treating as empty",
			zap.String("path", s.path),
			zap.Error(err))
		return users, nil
	}

	for _, id := range file.AuthorizedUsers {
		users[id] = struct{}{}
	}
	return users, nil
}

func (s *FileStore) save(users map[int64]struct{}) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	ids := make([]int64, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	raw, err := json.MarshalIndent(authFile{AuthorizedUsers: ids}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal authorized users: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}

	s.logger.Info("authorized users updated", zap.Int("count", len(ids)))
	return nil
}
