package transfer

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"github.com/pandodao/card-transfer/store/card"
	"github.com/pandodao/card-transfer/store/db/dbtest"
	"github.com/pandodao/card-transfer/store/fixture"
	transferstore "github.com/pandodao/card-transfer/store/transfer"
	"github.com/pandodao/card-transfer/store/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	first  core.CardNumber = "5559000000000001"
	second core.CardNumber = "5559000000000002"
	other  core.CardNumber = "4276000000000009"
)

var vasya = &core.Session{Login: "vasya"}

type harness struct {
	cards     core.CardStore
	transfers core.TransferStore
	svc       core.TransferService
}

// newHarness seeds vasya with the given balances on his two cards and petya
// with one card.
func newHarness(t *testing.T, a, b int64) *harness {
	t.Helper()

	ctx := context.Background()
	conn := dbtest.Open(t)
	sb := store.Builder(dbtest.Driver)
	cards := card.New(conn, sb)
	transfers := transferstore.New(conn, sb)

	require.NoError(t, fixture.Load(ctx, user.New(conn, sb), cards, []fixture.Account{
		{
			Login:    "vasya",
			Password: "qwerty123",
			Cards: []fixture.Card{
				{Number: string(first), Balance: a},
				{Number: string(second), Balance: b},
			},
		},
		{
			Login:    "petya",
			Password: "secret",
			Cards:    []fixture.Card{{Number: string(other), Balance: 100}},
		},
	}))

	return &harness{
		cards:     cards,
		transfers: transfers,
		svc:       New(cards, transfers, slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
}

func (h *harness) balances(t *testing.T) (int64, int64) {
	t.Helper()

	a, err := h.cards.Find(context.Background(), first)
	require.NoError(t, err)
	b, err := h.cards.Find(context.Background(), second)
	require.NoError(t, err)

	return a.Balance, b.Balance
}

func TestTransfer(t *testing.T) {
	tests := []struct {
		name        string
		a, b        int64
		req         core.TransferRequest
		wantErr     error
		wantA       int64
		wantB       int64
		wantJournal bool
	}{
		{
			name:        "moves money",
			a:           1000,
			b:           500,
			req:         core.TransferRequest{Source: first, Destination: second, Amount: 250},
			wantA:       750,
			wantB:       750,
			wantJournal: true,
		},
		{
			name:        "whole balance",
			a:           1000,
			b:           500,
			req:         core.TransferRequest{Source: second, Destination: first, Amount: 500},
			wantA:       1500,
			wantB:       0,
			wantJournal: true,
		},
		{
			name:    "insufficient funds",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: first, Destination: second, Amount: 1250},
			wantErr: core.ErrInsufficientFunds,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "zero amount",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: first, Destination: second, Amount: 0},
			wantErr: core.ErrInvalidAmount,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "negative amount",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: first, Destination: second, Amount: -10},
			wantErr: core.ErrInvalidAmount,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "same card",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: first, Destination: first, Amount: 10},
			wantErr: core.ErrSameCard,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "destination of another owner",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: first, Destination: other, Amount: 10},
			wantErr: core.ErrNotAuthorized,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "source of another owner",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: other, Destination: first, Amount: 10},
			wantErr: core.ErrNotAuthorized,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "unknown card",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: first, Destination: "1111222233334444", Amount: 10},
			wantErr: core.ErrNotAuthorized,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "invalid amount checked before ownership",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: other, Destination: other, Amount: 0},
			wantErr: core.ErrInvalidAmount,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "ownership checked before same card",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: other, Destination: other, Amount: 10},
			wantErr: core.ErrNotAuthorized,
			wantA:   1000,
			wantB:   500,
		},
		{
			name:    "same card checked before funds",
			a:       1000,
			b:       500,
			req:     core.TransferRequest{Source: second, Destination: second, Amount: 5000},
			wantErr: core.ErrSameCard,
			wantA:   1000,
			wantB:   500,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			h := newHarness(t, tc.a, tc.b)

			result, err := h.svc.Transfer(ctx, vasya, tc.req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, result.TraceID)
				assert.Equal(t, tc.req.Amount, result.Amount)
			}

			a, b := h.balances(t)
			assert.Equal(t, tc.wantA, a)
			assert.Equal(t, tc.wantB, b)
			assert.Equal(t, tc.a+tc.b, a+b, "total is conserved")

			journal, err := h.transfers.ListLogin(ctx, "vasya", 10)
			require.NoError(t, err)
			assert.Equal(t, tc.wantJournal, len(journal) == 1)

			if result != nil {
				if result.Source == first {
					assert.Equal(t, a, result.SourceBalance)
					assert.Equal(t, b, result.DestinationBalance)
				} else {
					assert.Equal(t, b, result.SourceBalance)
					assert.Equal(t, a, result.DestinationBalance)
				}
			}
		})
	}
}

func TestTransferWithoutSession(t *testing.T) {
	h := newHarness(t, 1000, 500)

	_, err := h.svc.Transfer(context.Background(), nil, core.TransferRequest{
		Source:      first,
		Destination: second,
		Amount:      1,
	})
	assert.ErrorIs(t, err, core.ErrUnauthenticated)
}

func TestTransferSequence(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 10000, 10000)

	_, err := h.svc.Transfer(ctx, vasya, core.TransferRequest{Source: first, Destination: second, Amount: 3000})
	require.NoError(t, err)

	_, err = h.svc.Transfer(ctx, vasya, core.TransferRequest{Source: first, Destination: second, Amount: 7001})
	assert.ErrorIs(t, err, core.ErrInsufficientFunds)

	result, err := h.svc.Transfer(ctx, vasya, core.TransferRequest{Source: second, Destination: first, Amount: 13000})
	require.NoError(t, err)
	assert.EqualValues(t, 20000, result.DestinationBalance)
	assert.EqualValues(t, 0, result.SourceBalance)
}

func TestTransferReplay(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 1000, 500)

	req := core.TransferRequest{
		TraceID:     "0c1f9a54-93c6-4a59-9e54-6a0f5f3a2b11",
		Source:      first,
		Destination: second,
		Amount:      100,
	}

	applied, err := h.svc.Transfer(ctx, vasya, req)
	require.NoError(t, err)

	replayed, err := h.svc.Transfer(ctx, vasya, req)
	require.NoError(t, err)
	assert.Equal(t, applied.ID, replayed.ID)
	assert.Equal(t, applied.SourceBalance, replayed.SourceBalance)

	a, b := h.balances(t)
	assert.EqualValues(t, 900, a, "replay does not move money again")
	assert.EqualValues(t, 600, b)

	t.Run("conflict", func(t *testing.T) {
		conflict := req
		conflict.Amount = 200

		_, err := h.svc.Transfer(ctx, vasya, conflict)
		assert.ErrorIs(t, err, core.ErrTraceConflict)

		a, b := h.balances(t)
		assert.EqualValues(t, 900, a)
		assert.EqualValues(t, 600, b)
	})
}

func TestTransferConcurrent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, 1000, 1000)

	const workers = 20

	var (
		wg      sync.WaitGroup
		mux     sync.Mutex
		applied int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			req := core.TransferRequest{Source: first, Destination: second, Amount: 150}
			if i%2 == 1 {
				req.Source, req.Destination = second, first
			}

			_, err := h.svc.Transfer(ctx, vasya, req)
			if err == nil {
				mux.Lock()
				applied++
				mux.Unlock()
				return
			}

			assert.ErrorIs(t, err, core.ErrInsufficientFunds)
		}(i)
	}

	wg.Wait()

	a, b := h.balances(t)
	assert.EqualValues(t, 2000, a+b)
	assert.GreaterOrEqual(t, a, int64(0))
	assert.GreaterOrEqual(t, b, int64(0))

	journal, err := h.transfers.ListLogin(ctx, "vasya", 100)
	require.NoError(t, err)
	assert.Len(t, journal, applied)
}

func TestTransferSameTraceInFlight(t *testing.T) {
	const trace = "5b7f3c1e-0d2a-4e8b-9c61-2f4a8d0e7b33"

	reqA := core.TransferRequest{TraceID: trace, Source: first, Destination: second, Amount: 100}
	reqB := core.TransferRequest{TraceID: trace, Source: second, Destination: first, Amount: 300}

	type outcome struct {
		req    core.TransferRequest
		result *core.Transfer
		err    error
	}

	run := func(t *testing.T, reqs ...core.TransferRequest) (*harness, []outcome) {
		t.Helper()

		h := newHarness(t, 1000, 500)
		svc := h.svc.(*service)

		outcomes := make([]outcome, len(reqs))

		// hold the engine so every request is in flight at once
		svc.mux.Lock()

		var wg sync.WaitGroup
		for i, req := range reqs {
			wg.Add(1)
			go func(i int, req core.TransferRequest) {
				defer wg.Done()

				result, err := h.svc.Transfer(context.Background(), vasya, req)
				outcomes[i] = outcome{req: req, result: result, err: err}
			}(i, req)
		}

		time.Sleep(50 * time.Millisecond)
		svc.mux.Unlock()
		wg.Wait()

		return h, outcomes
	}

	t.Run("different payloads conflict", func(t *testing.T) {
		h, outcomes := run(t, reqA, reqB)

		var applied, conflicts []outcome
		for _, o := range outcomes {
			if o.err == nil {
				applied = append(applied, o)
				continue
			}

			assert.ErrorIs(t, o.err, core.ErrTraceConflict)
			assert.Nil(t, o.result)
			conflicts = append(conflicts, o)
		}

		require.Len(t, applied, 1)
		require.Len(t, conflicts, 1)
		assert.True(t, applied[0].result.Matches("vasya", applied[0].req))

		a, b := h.balances(t)
		if applied[0].req.Source == first {
			assert.EqualValues(t, 900, a)
			assert.EqualValues(t, 600, b)
		} else {
			assert.EqualValues(t, 1300, a)
			assert.EqualValues(t, 200, b)
		}

		journal, err := h.transfers.ListLogin(context.Background(), "vasya", 10)
		require.NoError(t, err)
		require.Len(t, journal, 1)
		assert.Equal(t, applied[0].req.Amount, journal[0].Amount)
	})

	t.Run("identical payloads apply once", func(t *testing.T) {
		h, outcomes := run(t, reqA, reqA)

		for _, o := range outcomes {
			require.NoError(t, o.err)
		}
		assert.Equal(t, outcomes[0].result.ID, outcomes[1].result.ID)

		a, b := h.balances(t)
		assert.EqualValues(t, 900, a)
		assert.EqualValues(t, 600, b)
	})
}

func TestFlightKey(t *testing.T) {
	req := core.TransferRequest{TraceID: "trace", Source: first, Destination: second, Amount: 100}

	other := req
	other.Amount = 300

	assert.Equal(t, flightKey("vasya", req), flightKey("vasya", req))
	assert.NotEqual(t, flightKey("vasya", req), flightKey("vasya", other))
	assert.NotEqual(t, flightKey("vasya", req), flightKey("petya", req))
}
