package transfer

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/sync/singleflight"
)

func New(
	cards core.CardStore,
	transfers core.TransferStore,
	logger *slog.Logger,
) core.TransferService {
	return &service{
		cards:     cards,
		transfers: transfers,
		logger:    logger.With("service", "transfer"),
	}
}

type service struct {
	cards     core.CardStore
	transfers core.TransferStore
	logger    *slog.Logger

	// serializes every balance mutation of the process
	mux sync.Mutex
	sf  singleflight.Group
}

func (s *service) Transfer(ctx context.Context, session *core.Session, req core.TransferRequest) (*core.Transfer, error) {
	if session == nil {
		return nil, core.ErrUnauthenticated
	}

	if req.Amount <= 0 {
		return nil, core.ErrInvalidAmount
	}

	if err := s.checkOwner(ctx, session.Login, req.Source, req.Destination); err != nil {
		return nil, err
	}

	if req.Source == req.Destination {
		return nil, core.ErrSameCard
	}

	replay := req.TraceID != ""
	if !replay {
		req.TraceID = uuid.NewString()
	}

	v, err, _ := s.sf.Do(flightKey(session.Login, req), func() (interface{}, error) {
		return s.transfer(ctx, session.Login, req, replay)
	})
	if err != nil {
		return nil, err
	}

	t := v.(*core.Transfer)
	if !t.Matches(session.Login, req) {
		return nil, core.ErrTraceConflict
	}

	return t, nil
}

// flightKey only collapses requests that would journal the same transfer.
func flightKey(login string, req core.TransferRequest) string {
	return strings.Join([]string{
		req.TraceID,
		login,
		string(req.Source),
		string(req.Destination),
		strconv.FormatInt(req.Amount, 10),
	}, "|")
}

func (s *service) checkOwner(ctx context.Context, login string, numbers ...core.CardNumber) error {
	cards, err := s.cards.ListOwner(ctx, login)
	if err != nil {
		s.logger.Error("cards.ListOwner", "login", login, "err", err)
		return err
	}

	owned := mapset.New[core.CardNumber]()
	for _, card := range cards {
		owned.Put(card.Number)
	}

	for _, number := range numbers {
		if !owned.Has(number) {
			return core.ErrNotAuthorized
		}
	}

	return nil
}

func (s *service) transfer(ctx context.Context, login string, req core.TransferRequest, replay bool) (*core.Transfer, error) {
	logger := s.logger.With("trace", req.TraceID, "login", login)

	s.mux.Lock()
	defer s.mux.Unlock()

	if replay {
		t, err := s.transfers.FindTrace(ctx, req.TraceID)
		switch {
		case err == nil && t.Matches(login, req):
			logger.Debug("transfer already applied")
			return t, nil
		case err == nil:
			return nil, core.ErrTraceConflict
		case !store.IsErrNotFound(err):
			logger.Error("transfers.FindTrace", "err", err)
			return nil, err
		}
	}

	source, err := s.cards.Find(ctx, req.Source)
	if err != nil {
		logger.Error("cards.Find", "err", err)
		return nil, err
	}

	if source.Balance < req.Amount {
		logger.Debug("insufficient funds", "got", source.Balance, "want", req.Amount)
		return nil, core.ErrInsufficientFunds
	}

	t := &core.Transfer{
		TraceID:     req.TraceID,
		Login:       login,
		Source:      req.Source,
		Destination: req.Destination,
		Amount:      req.Amount,
	}

	if err := s.transfers.Apply(ctx, t); err != nil {
		if errors.Is(err, core.ErrInsufficientFunds) {
			return nil, err
		}

		logger.Error("transfers.Apply", "err", err)
		return nil, err
	}

	logger.Info("transfer applied",
		"source", t.Source.Masked(),
		"destination", t.Destination.Masked(),
		"amount", t.Amount,
	)

	return t, nil
}
