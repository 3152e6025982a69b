package cmds

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"github.com/pandodao/card-transfer/store/card"
	"github.com/pandodao/card-transfer/store/db/dbtest"
	"github.com/pandodao/card-transfer/store/transfer"
	"github.com/pandodao/card-transfer/store/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) []byte {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	fn()
	require.NoError(t, w.Close())

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestSeedAndLedger(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	sb := store.Builder(dbtest.Driver)

	c := &Cmd{
		Users:     user.New(conn, sb),
		Cards:     card.New(conn, sb),
		Transfers: transfer.New(conn, sb),
	}

	require.NoError(t, c.Run(ctx, []string{"seed"}))

	out := captureStdout(t, func() {
		require.NoError(t, c.Run(ctx, []string{"ledger"}))
	})

	var ledger core.Ledger
	require.NoError(t, json.Unmarshal(out, &ledger))
	assert.Equal(t, core.Ledger{Cards: 2, Total: 20000}, ledger)

	out = captureStdout(t, func() {
		require.NoError(t, c.Run(ctx, []string{"cards", "vasya"}))
	})

	var cards []cardView
	require.NoError(t, json.Unmarshal(out, &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "5559 0000 0000 0001", cards[0].Number)
}
