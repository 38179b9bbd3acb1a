package models

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is a dashboard account. Accounts are not persisted; they come from
// the mock directory in internal/auth.
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
