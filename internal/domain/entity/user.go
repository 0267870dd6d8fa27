package entity

import "time"

// User operador registrado de un workspace.
type User struct {
	ID           string
	WorkspaceID  string
	Email        string
	PasswordHash string
	FullName     string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
