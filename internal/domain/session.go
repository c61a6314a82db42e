package domain

// SessionStatus is the lifecycle position of the session holder.
type SessionStatus int

const (
	SessionUninitialized SessionStatus = iota
	SessionLoading
	SessionAuthenticated
	SessionAnonymous
)

func (s SessionStatus) String() string {
	switch s {
	case SessionUninitialized:
		return "uninitialized"
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// SessionState is a snapshot of the current session.
// Identity is non-nil only when Status is SessionAuthenticated.
type SessionState struct {
	Status   SessionStatus
	Identity *Identity
}

// StateFor derives the session state from a provider notification.
func StateFor(identity *Identity) SessionState {
	if identity == nil {
		return SessionState{Status: SessionAnonymous}
	}
	copied := *identity
	return SessionState{Status: SessionAuthenticated, Identity: &copied}
}

// Loading reports whether the first provider notification is still pending.
func (s SessionState) Loading() bool {
	return s.Status == SessionUninitialized || s.Status == SessionLoading
}

// Authenticated reports whether an identity currently holds the session.
func (s SessionState) Authenticated() bool {
	return s.Status == SessionAuthenticated && s.Identity != nil
}
