package store

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind an issued access token. The
// token carries the session id in its "sid" claim; deleting this record
// revokes the token even while the JWT itself is still unexpired.
type Session struct {
	ID        string    `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
