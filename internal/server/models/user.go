package models

import "time"

// User is an account known to the server. It is the identity handed to
// voters once a request has been authenticated.
type User struct {
	ID           int64
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
