// Package redis holds the Redis-backed repositories so sessions and cached
// quiz detail survive restarts and can be shared across gateway instances.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-master-gateway/internal/domain"
)

// SessionStore keeps sessions as JSON values with a per-key TTL, so expiry is
// enforced by Redis itself instead of a reaper.
type SessionStore struct {
	client *redis.Client
	clock  func() time.Time
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, clock: time.Now}
}

func (s *SessionStore) Put(ctx context.Context, session domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := session.ExpiresAt.Sub(s.clock())
	if ttl <= 0 {
		// Already expired; storing it would resurrect a dead session.
		return s.client.Del(ctx, s.key(session.ID)).Err()
	}
	return s.client.Set(ctx, s.key(session.ID), payload, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, bool, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.Session{}, false, err
	}
	return session, true, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
