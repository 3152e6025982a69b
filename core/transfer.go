package core

import (
	"context"
	"time"
)

type TransferRequest struct {
	TraceID     string     `json:"trace_id,omitempty"`
	Source      CardNumber `json:"source"`
	Destination CardNumber `json:"destination"`
	Amount      int64      `json:"amount"`
}

// Transfer is the journal record of an applied transfer together with the
// balances both cards had right after it.
type Transfer struct {
	ID                 uint64     `json:"id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	TraceID            string     `json:"trace_id"`
	Login              string     `json:"login"`
	Source             CardNumber `json:"source"`
	Destination        CardNumber `json:"destination"`
	Amount             int64      `json:"amount"`
	SourceBalance      int64      `json:"source_balance"`
	DestinationBalance int64      `json:"destination_balance"`
}

// Matches reports whether the journaled transfer was made for req.
func (t *Transfer) Matches(login string, req TransferRequest) bool {
	return t.Login == login &&
		t.Source == req.Source &&
		t.Destination == req.Destination &&
		t.Amount == req.Amount
}

type TransferStore interface {
	// Apply debits the source, credits the destination and journals the
	// transfer in one transaction, filling the resulting balances. It returns
	// ErrInsufficientFunds without any change when the debit would overdraw.
	Apply(ctx context.Context, transfer *Transfer) error
	FindTrace(ctx context.Context, traceID string) (*Transfer, error)
	ListLogin(ctx context.Context, login string, limit int) ([]*Transfer, error)
}

type TransferService interface {
	Transfer(ctx context.Context, session *Session, req TransferRequest) (*Transfer, error)
}
