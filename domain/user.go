package domain

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

// Designer account rules. Usernames show up in layout listings and log lines.
const (
	minUsernameLength = 3
	maxUsernameLength = 20
	minPasswordScore  = 3 // zxcvbn score, 0 to 4
	bcryptCost        = 12
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

	ErrUsernameTooShort = errors.New("username too short")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrInvalidUsername  = errors.New("username may only hold letters, digits and underscores")
	ErrWeakPassword     = errors.New("weak password")
)

// User is a level designer account. Layouts point back to it through Layout.OwnerID.
type User struct {
	ID           uuid.UUID `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
}

// UserConfig is a sign up request before it is validated.
type UserConfig struct {
	ID            uuid.UUID
	Username      string
	PlainPassword string
}

// Validate checks the username rules and the password strength. The username is fed to
// the strength estimate, so passwords built from it score low.
func (c UserConfig) Validate() error {
	switch n := len(c.Username); {
	case n < minUsernameLength:
		return ErrUsernameTooShort
	case n > maxUsernameLength:
		return ErrUsernameTooLong
	case !usernameRegex.MatchString(c.Username):
		return ErrInvalidUsername
	}

	if zxcvbn.PasswordStrength(c.PlainPassword, []string{c.Username}).Score < minPasswordScore {
		return ErrWeakPassword
	}
	return nil
}

// NewUser validates the request and stores only the bcrypt hash of the password.
func NewUser(c UserConfig) (*User, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.PlainPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return &User{
		ID:           c.ID,
		Username:     c.Username,
		PasswordHash: string(hash),
	}, nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
