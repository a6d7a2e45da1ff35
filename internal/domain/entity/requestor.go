package entity

// Requestor is the already-authenticated caller of an operation.
// The account service never authenticates it; it only reads these fields.
type Requestor struct {
	Email   string
	IsAdmin bool
}

// CanManageCredential reports whether the requestor may change the credential identified by email.
func (r Requestor) CanManageCredential(email string) bool {
	return r.IsAdmin || (r.Email != "" && r.Email == email)
}
