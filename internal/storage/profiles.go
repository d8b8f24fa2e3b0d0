package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	engine "github.com/vovakirdan/sweet-swap/internal/games/sweetswap/core"
)

// Profile is a named player with an optional game in progress.
type Profile struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Avatar    string             `json:"avatar"`
	Saved     *engine.SavedState `json:"saved,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CreateProfile adds a new profile with a fresh ID.
func (s *Store) CreateProfile(name, avatar string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, fmt.Errorf("storage: profile name is empty")
	}
	p := Profile{ID: uuid.NewString(), Name: name, Avatar: avatar}
	if _, err := s.db.Exec(
		"INSERT INTO profiles (id, name, avatar) VALUES (?, ?, ?)",
		p.ID, p.Name, p.Avatar,
	); err != nil {
		return Profile{}, fmt.Errorf("storage: cannot create profile %q: %w", name, err)
	}
	return p, nil
}

// EnsureProfile returns the profile with the given name, creating it if needed.
func (s *Store) EnsureProfile(name, avatar string) (Profile, error) {
	p, err := s.ProfileByName(name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}
	return s.CreateProfile(name, avatar)
}

// Profile loads a profile by ID.
func (s *Store) Profile(id string) (Profile, error) {
	return s.queryProfile("WHERE id = ?", id)
}

// ProfileByName loads a profile by name.
func (s *Store) ProfileByName(name string) (Profile, error) {
	return s.queryProfile("WHERE name = ?", strings.TrimSpace(name))
}

func (s *Store) queryProfile(where string, arg any) (Profile, error) {
	row := s.db.QueryRow("SELECT id, name, avatar, state, updated_at FROM profiles "+where, arg)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, fmt.Errorf("%w: profile %v", ErrNotFound, arg)
	}
	return p, err
}

// Profiles lists all profiles, most recently played first.
func (s *Store) Profiles() ([]Profile, error) {
	rows, err := s.db.Query("SELECT id, name, avatar, state, updated_at FROM profiles ORDER BY updated_at DESC, name")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(sc scanner) (Profile, error) {
	var p Profile
	var state sql.NullString
	var updated any
	if err := sc.Scan(&p.ID, &p.Name, &p.Avatar, &state, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, err
		}
		return Profile{}, fmt.Errorf("storage: cannot scan profile: %w", err)
	}
	p.UpdatedAt = parseTime(updated)
	if state.Valid && state.String != "" {
		var saved engine.SavedState
		if err := json.Unmarshal([]byte(state.String), &saved); err != nil {
			return Profile{}, fmt.Errorf("storage: profile %s has corrupt saved state: %w", p.ID, err)
		}
		p.Saved = &saved
	}
	return p, nil
}

// SaveState stores the game in progress for a profile.
func (s *Store) SaveState(id string, state engine.SavedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("storage: cannot encode saved state: %w", err)
	}
	return s.updateState(id, string(data))
}

// ClearState forgets the game in progress for a profile.
func (s *Store) ClearState(id string) error {
	return s.updateState(id, nil)
}

func (s *Store) updateState(id string, state any) error {
	res, err := s.db.Exec(
		"UPDATE profiles SET state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		state, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update profile %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: profile %s", ErrNotFound, id)
	}
	return nil
}

// DeleteProfile removes a profile. Leaderboard entries are kept.
func (s *Store) DeleteProfile(id string) error {
	if _, err := s.db.Exec("DELETE FROM profiles WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete profile %s: %w", id, err)
	}
	return nil
}
