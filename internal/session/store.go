// Package session persists the client-held session (bearer token, token
// kind, cached profile) to a local file. It is a pure storage adapter:
// no network calls, no validation beyond JSON well-formedness.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/evaluapro/desempeno-cli/internal/entity"
)

// Canonical storage keys; every reader and writer goes through these.
const (
	keyToken     = "access_token"
	keyTokenKind = "token_type"
	keyProfile   = "current_user"
)

const DefaultTokenKind = "Bearer"

type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// load reads the session file. Malformed or missing data reads as an
// empty session (fail closed).
func (s *Store) load() map[string]json.RawMessage {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]json.RawMessage{}
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]json.RawMessage{}
	}

	return values
}

func (s *Store) persist(values map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	// Temp file + rename so a crash mid-write never leaves a torn session.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename session: %w", err)
	}

	return nil
}

func (s *Store) SaveToken(token, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == "" {
		kind = DefaultTokenKind
	}

	values := s.load()
	values[keyToken] = mustMarshal(token)
	values[keyTokenKind] = mustMarshal(kind)

	return s.persist(values)
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stringValue(keyToken)
}

func (s *Store) TokenKind() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind := s.stringValue(keyTokenKind)
	if kind == "" && s.stringValue(keyToken) != "" {
		return DefaultTokenKind
	}

	return kind
}

// HasToken is the sole authentication predicate used system-wide. It
// checks presence only; token validity is the backend's call (a 401 on
// any request forces the session clear).
func (s *Store) HasToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stringValue(keyToken) != ""
}

func (s *Store) SaveProfile(p entity.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	values := s.load()
	values[keyProfile] = raw

	return s.persist(values)
}

// Profile returns the cached profile, or ok=false when absent or
// malformed.
func (s *Store) Profile() (entity.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.load()[keyProfile]
	if !ok {
		return entity.Profile{}, false
	}

	var p entity.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return entity.Profile{}, false
	}

	return p, true
}

// Clear removes token, token kind and profile together. Idempotent: a
// second call on an empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}

	return nil
}

func (s *Store) stringValue(key string) string {
	raw, ok := s.load()[key]
	if !ok {
		return ""
	}

	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}

	return v
}

func mustMarshal(v string) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
