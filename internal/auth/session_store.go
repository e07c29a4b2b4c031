package auth

import (
	"context"
	"time"

	"officetrack/internal/cache"
)

const blacklistKeyPrefix = "blacklist:session:"

// SessionStoreInterface defines server-side session revocation operations.
type SessionStoreInterface interface {
	BlacklistSession(ctx context.Context, tokenID string, ttl time.Duration) error
	IsSessionBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// SessionStore records revoked session token IDs in Redis until the token's
// natural expiry, giving cookie sessions real server-side logout.
type SessionStore struct {
	cache *cache.Client
}

var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// BlacklistSession marks a session token ID as revoked for ttl.
func (s *SessionStore) BlacklistSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, blacklistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsSessionBlacklisted checks whether a session token ID was revoked.
func (s *SessionStore) IsSessionBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, blacklistKeyPrefix+tokenID)
	if err != nil {
		// fail open: redis outage must not lock everyone out
		return false, nil
	}
	return data != nil, nil
}
