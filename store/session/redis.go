package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pandodao/card-transfer/core"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

func NewRedis(client redis.UniversalClient) core.SessionStore {
	return &redisStore{client: client}
}

type redisStore struct {
	client redis.UniversalClient
}

type record struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *redisStore) Create(ctx context.Context, session *core.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(record(*session))
	if err != nil {
		return err
	}

	return s.client.Set(ctx, keyPrefix+session.ID, data, ttl).Err()
}

func (s *redisStore) Find(ctx context.Context, id string) (*core.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}

	session := core.Session(r)
	return &session, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
