package models

// User is one registered customer. PasswordHash is a bcrypt hash and never
// leaves the server.
type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}
