package domain

// SyncResult reports the single backend sync attempt made after an auth event.
// A failed sync never fails the auth operation; callers decide whether to log it.
type SyncResult struct {
	Attempted bool
	Username  string
	Err       error
}

// Synced reports whether the backend accepted the identity.
func (r SyncResult) Synced() bool {
	return r.Attempted && r.Err == nil
}

// AuthResult is returned by every successful auth flow.
type AuthResult struct {
	Identity *Identity
	Message  string
	Sync     SyncResult
}
