package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/generic"
	"github.com/shopspring/decimal"
)

// amountField accepts a json number or string holding a whole number of minor
// units.
type amountField struct {
	decimal.Decimal
}

var maxAmount = decimal.NewFromInt(math.MaxInt64)

func (a amountField) Int64() (int64, error) {
	if !a.IsPositive() || !a.IsInteger() || a.GreaterThan(maxAmount) {
		return 0, core.ErrInvalidAmount
	}

	return a.IntPart(), nil
}

type transferRequest struct {
	TraceID string      `json:"trace_id" valid:"uuid,optional"`
	From    string      `json:"from" valid:"required"`
	To      string      `json:"to" valid:"required"`
	Amount  amountField `json:"amount" valid:"-"`
}

type transferView struct {
	TraceID     string    `json:"trace_id"`
	CreatedAt   time.Time `json:"created_at"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Amount      int64     `json:"amount"`
	FromBalance int64     `json:"from_balance"`
	ToBalance   int64     `json:"to_balance"`
}

func viewTransfer(t *core.Transfer) transferView {
	return transferView{
		TraceID:     t.TraceID,
		CreatedAt:   t.CreatedAt,
		From:        string(t.Source),
		To:          string(t.Destination),
		Amount:      t.Amount,
		FromBalance: t.SourceBalance,
		ToBalance:   t.DestinationBalance,
	}
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req transferRequest
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

	if _, err := govalidator.ValidateStruct(req); err != nil {
		s.renderError(w, r, requestError(err.Error()))
		return
	}

	source, srcErr := core.ParseCardNumber(req.From)
	destination, dstErr := core.ParseCardNumber(req.To)
	if srcErr != nil || dstErr != nil {
		observeTransfer(core.ErrNotAuthorized)
		s.renderError(w, r, core.ErrNotAuthorized)
		return
	}

	transfer, err := s.transferz.Transfer(ctx, sessionFrom(ctx), core.TransferRequest{
		TraceID:     req.TraceID,
		Source:      source,
		Destination: destination,
		Amount:      amount,
	})
	observeTransfer(err)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, viewTransfer(transfer))
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.renderError(w, r, requestError("limit must be a positive integer"))
			return
		}

		limit = min(n, 100)
	}

	session := sessionFrom(r.Context())
	transfers, err := s.transfers.ListLogin(r.Context(), session.Login, limit)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, generic.MapSlice(transfers, viewTransfer))
}
