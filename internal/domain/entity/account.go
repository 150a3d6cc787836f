package entity

import "time"

// Account represents a registered shopper (or an admin).
type Account struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext in the domain after persisting
	FirstName    string
	LastName     string
	Phone        string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
