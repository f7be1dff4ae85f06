// Package user implements accounts and login sessions for ValutaTrade Hub.
//
// The JSON shape of a stored user matches the historical users.json layout
// (user_id, username, hashed_password, salt, registration_date), so data
// written by earlier deployments keeps verifying.
package user

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/valutatrade-hub/valutatrade/pkg/errors"
)

const (
	saltBytes         = 8
	minPasswordLength = 4
	minUsernameLength = 3
	maxUsernameLength = 20
)

// User is a registered account.
type User struct {
	ID             int       `json:"user_id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"hashed_password"`
	Salt           string    `json:"salt"`
	RegisteredAt   time.Time `json:"registration_date"`
}

// New creates a user with a fresh salt and a hashed password.
// The caller assigns the ID when the user is persisted.
func New(username, password string, id int) (*User, error) {
	username = strings.TrimSpace(username)
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	salt, err := newSalt()
	if err != nil {
		return nil, errors.New(errors.ErrStorage, "failed to generate salt", err)
	}

	return &User{
		ID:             id,
		Username:       username,
		HashedPassword: hashPassword(password, salt),
		Salt:           salt,
		RegisteredAt:   time.Now(),
	}, nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return u.HashedPassword == hashPassword(password, u.Salt)
}

// ChangePassword rehashes the password after validation. The salt is kept so
// the stored document changes in a single field.
func (u *User) ChangePassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	u.HashedPassword = hashPassword(newPassword, u.Salt)
	return nil
}

// Info returns the non-sensitive fields for display.
func (u *User) Info() map[string]string {
	return map[string]string{
		"user_id":           fmt.Sprintf("%d", u.ID),
		"username":          u.Username,
		"registration_date": u.RegisteredAt.Format(time.RFC3339),
	}
}

// ValidateUsername checks the 3-20 alphanumeric characters rule.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return errors.ValidationError("username must be 3-20 alphanumeric characters")
	}
	for _, r := range username {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum {
			return errors.ValidationError("username must be 3-20 alphanumeric characters")
		}
	}
	return nil
}

// ValidatePassword checks the minimum length rule.
func ValidatePassword(password string) error {
	if len(strings.TrimSpace(password)) < minPasswordLength {
		return errors.ValidationError("password must be at least 4 characters")
	}
	return nil
}

func newSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
