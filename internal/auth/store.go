package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"zenban/internal/domain"
)

// Session is the persisted authentication state. It is written on login,
// updated in place on refresh, and cleared on logout or when a refresh
// fails irrecoverably.
type Session struct {
	Access  string
	Refresh string
	Profile domain.User // may be zero-valued when the profile is unknown
}

// Store persists the process-wide Session.
type Store interface {
	// Load returns the stored session, or (nil, nil) when none exists.
	Load() (*Session, error)

	// Save upserts the session. Callers merge before saving; Save
	// overwrites the stored row with exactly what it is given.
	Save(s *Session) error

	// Clear removes the stored session. Clearing an empty store is not
	// an error.
	Clear() error
}

// SQLiteStore implements Store on the single-row auth_session table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLiteStore backed by the given database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (r *SQLiteStore) Load() (*Session, error) {
	query := `SELECT access, refresh, profile_json FROM auth_session WHERE id = 1`
	var s Session
	var profileJSON string
	err := r.db.QueryRow(query).Scan(&s.Access, &s.Refresh, &profileJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if profileJSON != "" {
		if err := json.Unmarshal([]byte(profileJSON), &s.Profile); err != nil {
			// A corrupt profile should not lock the user out; the
			// tokens are still usable.
			s.Profile = domain.User{}
		}
	}
	return &s, nil
}

func (r *SQLiteStore) Save(s *Session) error {
	profileJSON, err := json.Marshal(s.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	query := `INSERT INTO auth_session (id, access, refresh, profile_json, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			access = excluded.access,
			refresh = excluded.refresh,
			profile_json = excluded.profile_json,
			updated_at = excluded.updated_at`
	_, err = r.db.Exec(query, s.Access, s.Refresh, string(profileJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM auth_session WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
