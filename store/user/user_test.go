package user

import (
	"context"
	"testing"

	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"github.com/pandodao/card-transfer/store/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	users := New(dbtest.Open(t), store.Builder(dbtest.Driver))

	_, err := users.Find(ctx, "vasya")
	require.True(t, store.IsErrNotFound(err))

	require.NoError(t, users.Create(ctx, &core.User{Login: "vasya", PasswordHash: "hash"}))
	assert.Error(t, users.Create(ctx, &core.User{Login: "vasya", PasswordHash: "other"}))

	user, err := users.Find(ctx, "vasya")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())

	cached, err := users.Find(ctx, "vasya")
	require.NoError(t, err)
	assert.Same(t, user, cached)
}
