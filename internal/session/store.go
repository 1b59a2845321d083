// Package session persists the login session between runs. State lives in a
// small SQLite database under the XDG config directory.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotInitialized is returned when the state database does not exist yet.
var ErrNotInitialized = errors.New("session: state database not initialized, run `backoffice init`")

// Session is the persisted token plus the user data issued with it.
type Session struct {
	Token     string
	Email     string
	Role      string
	TokenType string
	ExpiresIn int64 // seconds
	LoginTime time.Time
}

// Expired reports whether the provider-issued lifetime has elapsed. A zero
// ExpiresIn never expires.
func (s *Session) Expired(now time.Time) bool {
	if s.ExpiresIn <= 0 {
		return false
	}
	return now.Sub(s.LoginTime) > time.Duration(s.ExpiresIn)*time.Second
}

// ConfigDir resolves the application config directory, honoring
// XDG_CONFIG_HOME before falling back to ~/.config.
func ConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "backoffice"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "backoffice"), nil
}

// DefaultDBPath is where the state database lives unless overridden.
func DefaultDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "backoffice.db"), nil
}

// Store reads and writes the single persisted session row.
type Store struct {
	db *sql.DB
}

// Open connects to an existing state database.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, ErrNotInitialized
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Init creates the state database and its schema, replacing nothing that
// already exists.
func Init(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("session: create config dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("session: create %s: %w", path, err)
	}
	schema := `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		token_type TEXT NOT NULL,
		expires_in INTEGER NOT NULL,
		login_time INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces the persisted session.
func (s *Store) Save(sess Session) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, token, email, role, token_type, expires_in, login_time)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			token = excluded.token,
			email = excluded.email,
			role = excluded.role,
			token_type = excluded.token_type,
			expires_in = excluded.expires_in,
			login_time = excluded.login_time`,
		sess.Token, sess.Email, sess.Role, sess.TokenType, sess.ExpiresIn, sess.LoginTime.Unix())
	if err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Load returns the persisted session, or nil when none is stored.
func (s *Store) Load() (*Session, error) {
	row := s.db.QueryRow(`SELECT token, email, role, token_type, expires_in, login_time FROM session WHERE id = 1`)
	var sess Session
	var loginUnix int64
	err := row.Scan(&sess.Token, &sess.Email, &sess.Role, &sess.TokenType, &sess.ExpiresIn, &loginUnix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	sess.LoginTime = time.Unix(loginUnix, 0)
	return &sess, nil
}

// Clear removes the persisted session unconditionally.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Current returns the session if one is stored and unexpired. Expiry is
// checked lazily here, not by a timer; an expired session is cleared on the
// spot and nil is returned.
func (s *Store) Current() (*Session, error) {
	sess, err := s.Load()
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.Expired(time.Now()) {
		if err := s.Clear(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return sess, nil
}

// Token returns the stored bearer token, empty when logged out or expired.
func (s *Store) Token() string {
	sess, err := s.Current()
	if err != nil || sess == nil {
		return ""
	}
	return sess.Token
}
