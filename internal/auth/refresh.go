package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/kiosco-pos/internal/redissvc"
)

// Refresh tokens are opaque random strings mapped to a username. They live in
// redis when one is configured, with a local map as the fallback store.

const refreshTokenTTL = 7 * 24 * time.Hour

const refreshKeyPrefix = "auth:refresh:"

// ErrRefreshTokenNotFound is returned for unknown or expired refresh tokens.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

var (
	rdb *redis.Client
	ctx context.Context

	mu                sync.Mutex
	refreshTokenStore = map[string]string{}
)

func SetRedisService(rs *redissvc.RedisService) {
	rdb = rs.Rdb()
	ctx = rs.Ctx()
}

// IssueRefreshToken creates and stores a refresh token for the user.
func IssueRefreshToken(username string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	if rdb != nil {
		if err := rdb.Set(ctx, refreshKeyPrefix+token, username, refreshTokenTTL).Err(); err != nil {
			return "", err
		}
		return token, nil
	}

	mu.Lock()
	refreshTokenStore[token] = username
	mu.Unlock()
	return token, nil
}

// UsernameForRefreshToken resolves a refresh token back to its user.
func UsernameForRefreshToken(token string) (string, error) {
	if rdb != nil {
		username, err := rdb.Get(ctx, refreshKeyPrefix+token).Result()
		if errors.Is(err, redis.Nil) {
			return "", ErrRefreshTokenNotFound
		}
		return username, err
	}

	mu.Lock()
	defer mu.Unlock()
	username, ok := refreshTokenStore[token]
	if !ok {
		return "", ErrRefreshTokenNotFound
	}
	return username, nil
}
