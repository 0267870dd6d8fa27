package dto

import "time"

// RegisterRequest alta de cuenta: crea workspace + usuario en una sola llamada.
type RegisterRequest struct {
	FullName     string `json:"fullName" validate:"required,min=1,max=200"`
	WorkEmail    string `json:"workEmail" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BusinessName string `json:"businessName" validate:"required,min=1,max=200"`
	Timezone     string `json:"timezone" validate:"omitempty,max=64"`
}

// RegisterResponse identificadores asignados por el servidor más el token de sesión.
type RegisterResponse struct {
	WorkspaceID string `json:"workspaceId"`
	UserID      string `json:"userId"`
	Token       string `json:"token"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspaceId"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
