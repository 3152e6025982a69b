package verification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pandodao/card-transfer/core"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "verification:"

func NewRedis(client redis.UniversalClient) core.VerificationStore {
	return &redisStore{client: client}
}

type redisStore struct {
	client redis.UniversalClient
}

func (s *redisStore) Create(ctx context.Context, pending *core.PendingVerification) error {
	ttl := time.Until(pending.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(pending)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, keyPrefix+pending.Token, data, ttl).Err()
}

// Consume relies on GETDEL so a token is handed out at most once.
func (s *redisStore) Consume(ctx context.Context, token string) (*core.PendingVerification, error) {
	data, err := s.client.GetDel(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	var pending core.PendingVerification
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, err
	}

	return &pending, nil
}
