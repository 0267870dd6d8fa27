package entity

import "time"

// Workspace tenant del sistema: un negocio con su recepcionista AI.
type Workspace struct {
	ID           string
	BusinessName string
	Timezone     string
	Status       string // onboarding, live, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Estados de un workspace.
const (
	WorkspaceOnboarding = "onboarding"
	WorkspaceLive       = "live"
	WorkspaceSuspended  = "suspended"
)
