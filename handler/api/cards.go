package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pandodao/card-transfer/core"
)

type cardView struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Number  string `json:"number"`
	Balance int64  `json:"balance"`
}

func viewCard(index int, card *core.Card) cardView {
	return cardView{
		Index:   index,
		ID:      string(card.Number),
		Number:  card.Number.Masked(),
		Balance: card.Balance,
	}
}

func cardIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, requestError("card index must be an integer")
	}

	return index, nil
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.accounts.Cards(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	views := make([]cardView, 0, len(cards))
	for idx, card := range cards {
		views = append(views, viewCard(idx, card))
	}

	renderJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	index, err := cardIndex(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	cards, err := s.accounts.Cards(r.Context(), sessionFrom(r.Context()))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	card, ok := core.CardAt(cards, index)
	if !ok {
		s.renderError(w, r, core.ErrNotAuthorized)
		return
	}

	renderJSON(w, http.StatusOK, viewCard(index, card))
}

type transferToRequest struct {
	From   string      `json:"from"`
	Amount amountField `json:"amount"`
}

// handleTransferTo moves money to the card at the index in the path, the way
// the dashboard's "top up" button does.
func (s *Server) handleTransferTo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFrom(ctx)

	index, err := cardIndex(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	var req transferToRequest
	if err := decode(r, &req); err != nil {
		s.renderError(w, r, err)
		return
	}

	amount, err := req.Amount.Int64()
	if err != nil {
		observeTransfer(err)
		s.renderError(w, r, err)
		return
	}

	draft, err := s.dashboard.SelectDestination(ctx, session, index)
	if err != nil {
		observeTransfer(err)
		s.renderError(w, r, err)
		return
	}

	source, err := core.ParseCardNumber(req.From)
	if err != nil {
		observeTransfer(core.ErrNotAuthorized)
		s.renderError(w, r, core.ErrNotAuthorized)
		return
	}

	transfer, err := s.dashboard.MakeTransfer(ctx, session, draft, source, amount)
	observeTransfer(err)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, viewTransfer(transfer))
}
