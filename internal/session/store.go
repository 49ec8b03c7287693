package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const RefreshTokenTTL = 30 * 24 * time.Hour

// Store guarda refresh tokens no Redis. Um token presente na store
// é a prova de que a sessão ainda pode ser renovada.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, ttl: RefreshTokenTTL}
}

func refreshKey(token string) string {
	return fmt.Sprintf("session:refresh:%s", token)
}

func (s *Store) Issue(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if err := s.rdb.Set(ctx, refreshKey(token), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) UserID(ctx context.Context, token string) (uint, error) {
	val, err := s.rdb.Get(ctx, refreshKey(token)).Result()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, refreshKey(token)).Err()
}
