package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cse-motors/dealership/internal/core/domain"
)

const defaultSessionTTL = 2 * time.Hour

// SessionStore persists session records in Redis under sess:<id>, JSON
// encoded, with a TTL refreshed on every save. Sessions therefore survive
// process restarts but expire on their own after inactivity.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Get returns the stored record, or nil when the id is unknown or expired.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.SessionData, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data domain.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt record is unrecoverable; treat it as absent.
		return nil, nil
	}
	return &data, nil
}

// Save writes the record and refreshes its TTL. The call is synchronous:
// when it returns without error the session is durably stored.
func (s *SessionStore) Save(ctx context.Context, id string, data *domain.SessionData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Delete removes the record. Deleting an unknown id is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "sess:" + id
}
