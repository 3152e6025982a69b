package account

import (
	"context"
	"log/slog"

	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
)

func New(cards core.CardStore, logger *slog.Logger) core.AccountService {
	return &service{
		cards:  cards,
		logger: logger.With("service", "account"),
	}
}

type service struct {
	cards  core.CardStore
	logger *slog.Logger
}

func (s *service) Cards(ctx context.Context, session *core.Session) ([]*core.Card, error) {
	if session == nil {
		return nil, core.ErrUnauthenticated
	}

	cards, err := s.cards.ListOwner(ctx, session.Login)
	if err != nil {
		s.logger.Error("cards.ListOwner", "login", session.Login, "err", err)
		return nil, err
	}

	return cards, nil
}

// Balance reports unknown cards the same way as cards of other owners.
func (s *service) Balance(ctx context.Context, session *core.Session, number core.CardNumber) (int64, error) {
	if session == nil {
		return 0, core.ErrUnauthenticated
	}

	card, err := s.cards.Find(ctx, number)
	if err != nil {
		if store.IsErrNotFound(err) {
			return 0, core.ErrNotAuthorized
		}

		s.logger.Error("cards.Find", "err", err)
		return 0, err
	}

	if card.OwnerLogin != session.Login {
		return 0, core.ErrNotAuthorized
	}

	return card.Balance, nil
}
