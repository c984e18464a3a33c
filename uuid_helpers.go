package authclient

import "github.com/google/uuid"

// SessionUserUUID parses the session's user identifier.
func SessionUserUUID(session *Session) (uuid.UUID, error) {
	if session == nil {
		return uuid.Nil, ErrNotInitialized
	}
	return uuid.Parse(session.UserID)
}

// HasUserUUID reports whether SessionUserUUID will succeed.
func HasUserUUID(session *Session) bool {
	_, err := SessionUserUUID(session)
	return err == nil
}
