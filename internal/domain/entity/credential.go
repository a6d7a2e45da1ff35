// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// LoginType identifies how a credential authenticates.
type LoginType string

const (
	// LoginTypePassword marks a credential verified by its stored password hash.
	LoginTypePassword LoginType = "password"
)

// String returns the string representation of the LoginType.
func (l LoginType) String() string {
	return string(l)
}

// Credential is the platform-wide login identity. Email is unique across every workspace.
type Credential struct {
	Email        string    // Global identity of the credential, unique across the platform.
	PasswordHash string    // Self-describing encoded hash (algorithm, parameters, salt, digest).
	LoginType    LoginType // How this credential logs in.
	IsSuperAdmin bool      // Grants platform-wide administration.
	IsVerified   bool      // Whether the email has been verified.
	DisplayName  string    // Human readable name shown across workspaces.
	Company      *string   // Optional company the account belongs to.
	CreatedAt    time.Time // Timestamp of when this credential was created.
}
