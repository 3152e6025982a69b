package property

import (
	"context"
	"testing"

	"github.com/pandodao/card-transfer/store"
	"github.com/pandodao/card-transfer/store/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyStore(t *testing.T) {
	ctx := context.Background()
	properties := New(dbtest.Open(t), store.Builder(dbtest.Driver))

	type baseline struct {
		Cards int   `json:"cards"`
		Total int64 `json:"total"`
	}

	v := baseline{Cards: -1}
	require.NoError(t, properties.Get(ctx, "missing", &v))
	assert.Equal(t, -1, v.Cards, "unknown names leave the value untouched")

	require.NoError(t, properties.Set(ctx, "ledger", baseline{Cards: 2, Total: 20000}))
	require.NoError(t, properties.Get(ctx, "ledger", &v))
	assert.Equal(t, baseline{Cards: 2, Total: 20000}, v)

	require.NoError(t, properties.Set(ctx, "ledger", baseline{Cards: 3, Total: 25000}))
	require.NoError(t, properties.Get(ctx, "ledger", &v))
	assert.Equal(t, baseline{Cards: 3, Total: 25000}, v)
}
