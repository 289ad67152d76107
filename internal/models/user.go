package models

import "time"

// User represents a registered account. The email doubles as the username,
// so the projection exposes it under both keys.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Organization string    `json:"organization"`
	Verified     bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

// Projection is the client-facing view of a user.
type Projection struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Organization string `json:"organization"`
}

// Project builds the wire view of u. The username mirrors the email.
func (u User) Project() Projection {
	return Projection{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Organization: u.Organization,
	}
}
