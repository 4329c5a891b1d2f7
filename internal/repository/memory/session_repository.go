package memory

import (
	"context"
	"time"

	"quicknote-be/internal/repository/contract"
	"quicknote-be/pkg/store"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps sessions in process memory. Entries expire with
// the token, so a crash-free process never accumulates stale sessions.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(defaultTTL time.Duration) *SessionRepository {
	c := cache.New(defaultTTL, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	r.cache.Set(session.ID, session, ttl)
	return nil
}

func (r *SessionRepository) Find(_ context.Context, id string) (*store.Session, error) {
	if x, found := r.cache.Get(id); found {
		return x.(*store.Session), nil
	}
	return nil, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

func (r *SessionRepository) DeleteAllByUserId(_ context.Context, userId uuid.UUID) error {
	for id, item := range r.cache.Items() {
		if s, ok := item.Object.(*store.Session); ok && s.UserID == userId {
			r.cache.Delete(id)
		}
	}
	return nil
}

var _ contract.SessionRepository = (*SessionRepository)(nil)
