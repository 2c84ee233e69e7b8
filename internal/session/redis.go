package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking-admin/config"
	"github.com/Domenick1991/airbooking-admin/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store reads admin sessions from the Redis the identity provider writes
// them to, keyed by the opaque token carried in the session cookie. This
// side only resolves and revokes sessions, it never creates them.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(cfg config.RedisConfig, ttl time.Duration) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

// Get returns (nil, nil) when the token is unknown or expired.
func (s *Store) Get(ctx context.Context, token string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	// sliding expiry: an active admin stays signed in
	if s.ttl > 0 {
		_ = s.client.Expire(ctx, sessionKey(token), s.ttl).Err()
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:admin:%s", token)
}
