package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pandodao/card-transfer/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionStore(t *testing.T, sessions core.SessionStore) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	session := &core.Session{
		ID:        "session-1",
		Login:     "vasya",
		Token:     "jwt",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, sessions.Create(ctx, session))

	got, err := sessions.Find(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "vasya", got.Login)
	assert.Equal(t, "jwt", got.Token)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, sessions.Delete(ctx, session.ID))

	got, err = sessions.Find(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, sessions.Delete(ctx, "unknown"))
}

func TestMemoryStore(t *testing.T) {
	testSessionStore(t, NewMemory(16, time.Hour))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	testSessionStore(t, NewRedis(client))

	t.Run("expires with the session", func(t *testing.T) {
		ctx := context.Background()
		sessions := NewRedis(client)
		require.NoError(t, sessions.Create(ctx, &core.Session{
			ID:        "session-2",
			Login:     "vasya",
			ExpiresAt: time.Now().Add(time.Minute),
		}))

		mr.FastForward(2 * time.Minute)

		got, err := sessions.Find(ctx, "session-2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
