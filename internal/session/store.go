package session

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/mattn/go-sqlite3"
)

// ErrIdentityRequired is returned when Login is called without an identity.
var ErrIdentityRequired = errors.New("session: identity required")

// Session is a snapshot of the authenticated identity. A zero Identity
// means no one is logged in and the role is guest.
type Session struct {
	Identity    string
	DisplayName string
	Role        Role
	Token       string
	CreatedAt   time.Time
}

// Store owns the single active session for this client process.
// It starts in a loading state; callers must Hydrate once before
// rendering decisions that depend on authentication.
type Store struct {
	db *sql.DB

	mu       sync.Mutex
	hydrated bool
	current  *Session // nil means guest
}

// NewStore opens the SQLite database at dbPath and creates the session
// table if it does not exist. The store is not hydrated yet.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		identity TEXT NOT NULL,
		display_name TEXT NOT NULL,
		role TEXT NOT NULL,
		token TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Hydrate reads the persisted session into memory. It runs at most once;
// later calls are no-ops. A persisted token that has visibly expired
// tears the session down to guest.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return nil
	}

	sess, err := s.read()
	if err != nil {
		return err
	}
	if sess != nil && tokenExpired(sess.Token) {
		if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
			return fmt.Errorf("delete expired session: %w", err)
		}
		sess = nil
	}

	s.current = sess
	s.hydrated = true
	return nil
}

// Loading reports whether the store has not yet hydrated from durable
// storage. While loading, the session is neither authenticated nor
// unauthenticated.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.hydrated
}

// Login replaces the current session unconditionally and persists it.
// Credentials are assumed to have been validated by the issuing server.
func (s *Store) Login(sess Session) error {
	if sess.Identity == "" {
		return ErrIdentityRequired
	}
	if sess.Role == RoleGuest {
		sess.Role = RoleShopper
	}
	sess.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO session (id, identity, display_name, role, token, created_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   identity = excluded.identity,
		   display_name = excluded.display_name,
		   role = excluded.role,
		   token = excluded.token,
		   created_at = excluded.created_at`,
		sess.Identity, sess.DisplayName, sess.Role.String(), sess.Token, sess.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.current = &sess
	s.hydrated = true
	return nil
}

// Logout clears the session to guest and removes the durable record.
// No network call is made.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	s.current = nil
	s.hydrated = true
	return nil
}

// Current returns a copy of the active session, or nil for guest.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// IsAuthenticated reports whether an identity is logged in. Before
// hydration it falls back to durable storage so early callers see the
// persisted state.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return s.current != nil
	}
	sess, err := s.read()
	return err == nil && sess != nil
}

// Role returns the active role, RoleGuest when no session exists.
func (s *Store) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return RoleGuest
	}
	return s.current.Role
}

// Token returns the bearer token of the active session, or "" for guest.
// Satisfies the api client's token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// read loads the persisted session row. Callers must hold s.mu.
func (s *Store) read() (*Session, error) {
	row := s.db.QueryRow(
		`SELECT identity, display_name, role, token, created_at FROM session WHERE id = 1`,
	)

	var sess Session
	var role string
	err := row.Scan(&sess.Identity, &sess.DisplayName, &role, &sess.Token, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	sess.Role, err = ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("parse stored role: %w", err)
	}

	return &sess, nil
}

// tokenExpired reports whether token is a well-formed JWT whose exp claim
// is in the past. Opaque or claim-less tokens are never considered
// expired locally; the server remains the authority.
func tokenExpired(token string) bool {
	if token == "" {
		return false
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
