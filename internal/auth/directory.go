// Package auth is the demo login: a fixed set of accounts checked against
// bcrypt hashes held in memory. There is no token and no expiry.
package auth

import (
	"errors"
	"strings"

	"asset-registry/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("E-mail ou senha inválidos")

type account struct {
	user models.User
	hash []byte
}

type Credential struct {
	User     models.User
	Password string
}

type Directory struct {
	byEmail map[string]account
	byID    map[string]models.User
}

// MockCredentials are the two demo accounts of the dashboard.
func MockCredentials() []Credential {
	return []Credential{
		{User: models.User{ID: "1", Email: "admin@empresa.com", Name: "Administrador", Role: models.RoleAdmin}, Password: "admin123"},
		{User: models.User{ID: "2", Email: "usuario@empresa.com", Name: "Usuário Comum", Role: models.RoleUser}, Password: "user123"},
	}
}

func NewDirectory(creds []Credential, cost int) (*Directory, error) {
	d := &Directory{
		byEmail: make(map[string]account, len(creds)),
		byID:    make(map[string]models.User, len(creds)),
	}
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, err
		}
		email := normalizeEmail(c.User.Email)
		d.byEmail[email] = account{user: c.User, hash: hash}
		d.byID[c.User.ID] = c.User
	}
	return d, nil
}

// NewMockDirectory hashes the demo accounts once at startup.
func NewMockDirectory() (*Directory, error) {
	return NewDirectory(MockCredentials(), bcrypt.DefaultCost)
}

func (d *Directory) Authenticate(email, password string) (models.User, error) {
	acc, ok := d.byEmail[normalizeEmail(email)]
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return acc.user, nil
}

func (d *Directory) Lookup(id string) (models.User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
