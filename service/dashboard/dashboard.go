// Package dashboard addresses a session's cards by position, the way the
// dashboard page lists them, and routes transfers to the transfer engine.
package dashboard

import (
	"context"

	"github.com/pandodao/card-transfer/core"
)

type Dashboard struct {
	accounts  core.AccountService
	transferz core.TransferService
}

func New(accounts core.AccountService, transferz core.TransferService) *Dashboard {
	return &Dashboard{
		accounts:  accounts,
		transferz: transferz,
	}
}

// Draft is a transfer with its destination chosen.
type Draft struct {
	Index       int
	Destination core.CardNumber
}

func (d *Dashboard) card(ctx context.Context, session *core.Session, index int) (*core.Card, error) {
	cards, err := d.accounts.Cards(ctx, session)
	if err != nil {
		return nil, err
	}

	card, ok := core.CardAt(cards, index)
	if !ok {
		return nil, core.ErrNotAuthorized
	}

	return card, nil
}

func (d *Dashboard) CardBalance(ctx context.Context, session *core.Session, index int) (int64, error) {
	card, err := d.card(ctx, session, index)
	if err != nil {
		return 0, err
	}

	return card.Balance, nil
}

func (d *Dashboard) SelectDestination(ctx context.Context, session *core.Session, index int) (*Draft, error) {
	card, err := d.card(ctx, session, index)
	if err != nil {
		return nil, err
	}

	return &Draft{Index: index, Destination: card.Number}, nil
}

func (d *Dashboard) MakeTransfer(ctx context.Context, session *core.Session, draft *Draft, source core.CardNumber, amount int64) (*core.Transfer, error) {
	if draft == nil {
		return nil, core.ErrNotAuthorized
	}

	return d.transferz.Transfer(ctx, session, core.TransferRequest{
		Source:      source,
		Destination: draft.Destination,
		Amount:      amount,
	})
}
