package contract

import (
	"context"

	"quicknote-be/pkg/store"

	"github.com/google/uuid"
)

// SessionRepository is the revocation authority for issued tokens. A token
// whose session record is gone no longer authenticates, regardless of its
// JWT expiry.
type SessionRepository interface {
	Save(ctx context.Context, session *store.Session) error
	Find(ctx context.Context, id string) (*store.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
}
