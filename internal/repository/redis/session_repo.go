package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrRedisUnavailable  = errors.New("redis unavailable")
	ErrSessionExtendFail = errors.New("session extend failed")
	ErrSessionDeleteFail = errors.New("session delete failed")
)

const (
	SessionKeyPrefix = "session:user"
	SessionTTL       = 30 * time.Minute
)

// SessionRepository stores the active session token per user. One token
// per user: a fresh login displaces the previous session.
type SessionRepository struct{}

func sessionKey(userID uint64) string {
	return fmt.Sprintf("%s:%d", SessionKeyPrefix, userID)
}

func (r *SessionRepository) Add(userID uint64, token string) error {
	if err := Client.Set(context.Background(), sessionKey(userID), token, SessionTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Get(userID uint64) (string, error) {
	token, err := Client.Get(context.Background(), sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// Extend renews the sliding expiry on each authenticated request.
func (r *SessionRepository) Extend(userID uint64) error {
	if _, err := Client.Expire(context.Background(), sessionKey(userID), SessionTTL).Result(); err != nil {
		return ErrSessionExtendFail
	}
	return nil
}

func (r *SessionRepository) Delete(userID uint64) error {
	if err := Client.Del(context.Background(), sessionKey(userID)).Err(); err != nil {
		return ErrSessionDeleteFail
	}
	return nil
}
