package entity

import "time"

// User represents a registered account. The password hash never crosses the
// API boundary; handlers return the Public projection instead.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Public is the client-visible projection of a user.
type Public struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the client-visible projection.
func (u *User) Public() Public {
	return Public{ID: u.ID, Email: u.Email, Name: u.Name}
}
