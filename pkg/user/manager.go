package user

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
	"github.com/valutatrade-hub/valutatrade/pkg/errors"
	"github.com/valutatrade-hub/valutatrade/pkg/storage"
)

// session is the persisted login state. The CLI is a one-shot binary, so the
// current user has to survive between invocations.
type session struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Manager owns the users document and the login session.
type Manager struct {
	cfg     *config.Config
	store   *storage.Store
	log     zerolog.Logger
	users   []*User
	current *User
}

// NewManager loads the users document and restores any persisted session.
func NewManager(cfg *config.Config, store *storage.Store, log zerolog.Logger) (*Manager, error) {
	m := &Manager{cfg: cfg, store: store, log: log}

	if _, err := store.Load(cfg.UsersPath(), &m.users); err != nil {
		return nil, errors.StorageError("failed to load users", err)
	}

	var sess session
	found, err := store.Load(cfg.SessionPath(), &sess)
	if err != nil {
		return nil, errors.StorageError("failed to load session", err)
	}
	if found {
		if u := m.ByID(sess.UserID); u != nil && u.Username == sess.Username {
			m.current = u
		}
	}

	return m, nil
}

// Register creates a new user with the next sequential ID and persists the
// users document.
func (m *Manager) Register(username, password string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	for _, u := range m.users {
		if u.Username == username {
			return nil, errors.ValidationError(fmt.Sprintf("username '%s' is already taken", username))
		}
	}

	nextID := 0
	for _, u := range m.users {
		if u.ID > nextID {
			nextID = u.ID
		}
	}
	nextID++

	u, err := New(username, password, nextID)
	if err != nil {
		return nil, err
	}

	m.users = append(m.users, u)
	if err := m.save(); err != nil {
		m.users = m.users[:len(m.users)-1]
		return nil, err
	}

	m.log.Info().Str("action", "REGISTER").Str("username", username).Int("user_id", u.ID).
		Msg("user registered")
	return u, nil
}

// Remove deletes a user and persists the document. It exists so the CLI can
// roll back a registration whose portfolio could not be created.
func (m *Manager) Remove(id int) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return m.save()
		}
	}
	return errors.ValidationError(fmt.Sprintf("user %d not found", id))
}

// Login verifies credentials and persists the session.
func (m *Manager) Login(username, password string) (*User, error) {
	var found *User
	for _, u := range m.users {
		if u.Username == username {
			found = u
			break
		}
	}
	if found == nil {
		return nil, errors.ValidationError(fmt.Sprintf("user '%s' not found", username))
	}

	if !found.VerifyPassword(password) {
		return nil, errors.ValidationError("invalid password")
	}

	m.current = found
	if err := m.store.Save(m.cfg.SessionPath(), session{UserID: found.ID, Username: found.Username}); err != nil {
		return nil, errors.StorageError("failed to persist session", err)
	}

	m.log.Info().Str("action", "LOGIN").Str("username", username).Msg("user logged in")
	return found, nil
}

// Logout clears the session and returns the username that was logged out.
func (m *Manager) Logout() (string, error) {
	if m.current == nil {
		return "", errors.NotAuthenticated()
	}
	username := m.current.Username
	m.current = nil
	if err := m.store.Save(m.cfg.SessionPath(), session{}); err != nil {
		return "", errors.StorageError("failed to clear session", err)
	}
	m.log.Info().Str("action", "LOGOUT").Str("username", username).Msg("user logged out")
	return username, nil
}

// Current returns the logged-in user, or nil.
func (m *Manager) Current() *User {
	return m.current
}

// IsLoggedIn reports whether a session is active.
func (m *Manager) IsLoggedIn() bool {
	return m.current != nil
}

// ByID returns the user with the given ID, or nil.
func (m *Manager) ByID(id int) *User {
	if id == 0 {
		return nil
	}
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (m *Manager) save() error {
	if err := m.store.Save(m.cfg.UsersPath(), m.users); err != nil {
		return errors.StorageError("failed to save users", err)
	}
	return nil
}
