// Package session tracks the authenticated state of the client.
//
// The bearer credential and the language preference are the only
// values that survive across runs; both live in a single JSON state
// file readable only by the owner.
package session

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/financeflow/flow/internal/config"
)

// DefaultLanguage is used until the user picks one.
const DefaultLanguage = "en"

// supportedLanguages are the statement languages the backend renders.
var supportedLanguages = []string{"en", "it"}

// SupportedLanguages lists the accepted statement language codes.
func SupportedLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// SupportedLanguage reports whether lang is an accepted code.
func SupportedLanguage(lang string) bool {
	for _, l := range supportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

const stateFileName = "session.json"

// state is the persisted shape of the session file.
type state struct {
	AccessToken string    `json:"access_token"`
	Language    string    `json:"language"`
	SavedAt     time.Time `json:"saved_at"`
}

// Session holds the current credential and language preference and
// notifies observers when the credential is cleared. Components read
// authentication state through this one interface instead of an
// ambient global.
type Session struct {
	path      string
	mu        sync.Mutex
	st        state
	onLogout  []func()
}

// StateFilePath returns the default location of the session file.
func StateFilePath() (string, error) {
	dir, err := config.DataDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return filepath.Join(dir, stateFileName), nil
}

// Load reads the session state from path, starting unauthenticated if
// no state file exists yet.
func Load(path string) (*Session, error) {
	s := &Session{path: path, st: state{Language: DefaultLanguage}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt state file means a fresh login, not a crash.
		slog.Warn("Discarding unreadable session state", "path", path, "error", err)
		return s, nil
	}
	if st.Language == "" {
		st.Language = DefaultLanguage
	}
	s.st = st

	return s, nil
}

// Authenticated reports whether a credential is present.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.AccessToken != ""
}

// Token returns the current bearer credential, or "" when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.AccessToken
}

// SetToken stores a freshly issued credential and persists it.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.st.AccessToken = token
	s.st.SavedAt = time.Now()
	err := s.save()
	s.mu.Unlock()
	return err
}

// Clear drops the credential, persists the change, and notifies logout
// observers. It is invoked on explicit logout and by the gateway's
// global 401 handler.
func (s *Session) Clear() error {
	s.mu.Lock()
	wasAuthenticated := s.st.AccessToken != ""
	s.st.AccessToken = ""
	s.st.SavedAt = time.Now()
	err := s.save()
	observers := make([]func(), len(s.onLogout))
	copy(observers, s.onLogout)
	s.mu.Unlock()

	if wasAuthenticated {
		for _, fn := range observers {
			fn()
		}
	}
	return err
}

// OnLogout registers fn to run whenever the credential is cleared.
// Stores use this to drop in-memory data.
func (s *Session) OnLogout(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// Language returns the persisted language preference.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Language
}

// SetLanguage stores the language preference and persists it.
func (s *Session) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Language = lang
	return s.save()
}

// save writes the state file. Callers hold s.mu.
func (s *Session) save() error {
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600) // Read/write for owner only
}
