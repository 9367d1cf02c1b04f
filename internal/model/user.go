package model

import "time"

// User is the persisted credential record. PasswordHash never leaves the
// process; every outward-facing payload goes through Account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	HasAccess    bool      `json:"has_access"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Account is the public projection of a User.
type Account struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	HasAccess bool      `json:"has_access"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Account() Account {
	return Account{
		ID:        u.ID,
		Username:  u.Username,
		HasAccess: u.HasAccess,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// LoginResult is returned from a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Account   `json:"user"`
}
