package entity

import "time"

// Account is the per-workspace user record. Username is unique within WorkspaceID only,
// and Email references the Credential created alongside it.
type Account struct {
	WorkspaceID string    // Workspace the account belongs to.
	Username    string    // Unique within WorkspaceID.
	Email       string    // Reference to the owning Credential.
	IsAdmin     bool      // Workspace-scoped admin flag.
	Role        string    // Workspace-scoped role label.
	CreatedAt   time.Time // Timestamp of when this account was created.
}
