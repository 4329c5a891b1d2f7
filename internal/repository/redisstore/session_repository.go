package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quicknote-be/internal/repository/contract"
	"quicknote-be/pkg/store"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionRepository stores sessions in Redis so revocation survives
// restarts and is shared across instances. Each session lives under
// session:<sid> with the token TTL; a per-user set indexes the sids for
// DeleteAllByUserId.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionKey(id string) string {
	return "session:" + id
}

func userSessionsKey(userId uuid.UUID) string {
	return "user_sessions:" + userId.String()
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.ID)
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) Find(ctx context.Context, id string) (*store.Session, error) {
	data, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id)).Err()
}

func (r *SessionRepository) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	ids, err := r.rdb.SMembers(ctx, userSessionsKey(userId)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userSessionsKey(userId))

	return r.rdb.Del(ctx, keys...).Err()
}

var _ contract.SessionRepository = (*SessionRepository)(nil)
