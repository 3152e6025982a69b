package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"github.com/pandodao/card-transfer/store/card"
	"github.com/pandodao/card-transfer/store/db/dbtest"
	"github.com/pandodao/card-transfer/store/fixture"
	"github.com/pandodao/card-transfer/store/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	sb := store.Builder(dbtest.Driver)
	cards := card.New(conn, sb)

	accounts := append(fixture.Default(), fixture.Account{
		Login:    "petya",
		Password: "secret",
		Cards:    []fixture.Card{{Number: "4276 0000 0000 0009", Balance: 77}},
	})
	require.NoError(t, fixture.Load(ctx, user.New(conn, sb), cards, accounts))

	s := New(cards, slog.New(slog.NewTextHandler(io.Discard, nil)))
	vasya := &core.Session{Login: "vasya"}

	t.Run("cards", func(t *testing.T) {
		list, err := s.Cards(ctx, vasya)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, core.CardNumber("5559000000000001"), list[0].Number)
		assert.Equal(t, core.CardNumber("5559000000000002"), list[1].Number)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := s.Cards(ctx, nil)
		assert.ErrorIs(t, err, core.ErrUnauthenticated)

		_, err = s.Balance(ctx, nil, "5559000000000001")
		assert.ErrorIs(t, err, core.ErrUnauthenticated)
	})

	tests := []struct {
		name    string
		number  core.CardNumber
		want    int64
		wantErr error
	}{
		{"own card", "5559000000000001", 10000, nil},
		{"other owner", "4276000000000009", 0, core.ErrNotAuthorized},
		{"unknown card", "1111222233334444", 0, core.ErrNotAuthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Balance(ctx, vasya, tc.number)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
