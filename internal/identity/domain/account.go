package domain

import "time"

// Account is the durable identity record. Username and email are each
// globally unique (case-sensitive); the id is assigned by the store on
// creation and never reused.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // argon2id PHC encoded, never the raw password
	FirstName    string // optional
	LastName     string // optional
	Active       bool
	LastLogin    *time.Time // set on each successful login (nullable)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
