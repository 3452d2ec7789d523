package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records, per user, the instant before which issued tokens
// are no longer accepted.
// Key format: revoked:<user_id> holding a unix timestamp in seconds.
type RevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRevocationStore keeps each marker for ttl, which should match the token
// lifetime: once every older token has expired the marker is useless.
func NewRevocationStore(client *redis.Client, ttl time.Duration) *RevocationStore {
	return &RevocationStore{client: client, ttl: ttl}
}

func (s *RevocationStore) Revoke(ctx context.Context, userID string, at time.Time) error {
	if err := s.client.Set(ctx, revocationKey(userID), at.Unix(), s.ttl).Err(); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

// RevokedSince returns the revocation instant for userID, if any.
func (s *RevocationStore) RevokedSince(ctx context.Context, userID string) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, revocationKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("revocation lookup: %w", err)
	}

	at, err := parseRevocation(raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return at, true, nil
}

func revocationKey(userID string) string {
	return "revoked:" + userID
}

func parseRevocation(raw string) (time.Time, error) {
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("revocation value %q: %w", raw, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}
