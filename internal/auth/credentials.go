package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Authenticator checks logins against the single configured operator.
type Authenticator struct {
	user         User
	passwordHash string
}

func NewAuthenticator(email, name, passwordHash string) *Authenticator {
	return &Authenticator{
		user: User{
			ID:    strings.ToLower(email),
			Name:  name,
			Email: email,
		},
		passwordHash: passwordHash,
	}
}

func (a *Authenticator) Authenticate(email, password string) (*User, error) {
	if a.passwordHash == "" || a.user.Email == "" {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(email, a.user.Email) || !CheckPasswordHash(password, a.passwordHash) {
		return nil, ErrInvalidCredentials
	}
	u := a.user
	return &u, nil
}
