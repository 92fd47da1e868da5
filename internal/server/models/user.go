// Package models holds the server-side persistence types.
package models

import "time"

// User is a stored credential record. PasswordHash is always a bcrypt hash;
// the raw password never reaches this type.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Username     string
	CreatedAt    time.Time
}
