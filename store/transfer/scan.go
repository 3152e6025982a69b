package transfer

import (
	"github.com/pandodao/card-transfer/core"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

var scanColumns = []string{
	"id",
	"created_at",
	"trace_id",
	"login",
	"source",
	"destination",
	"amount",
	"source_balance",
	"destination_balance",
}

func scanTransfer(scanner scanner, transfer *core.Transfer) error {
	return scanner.Scan(
		&transfer.ID,
		&transfer.CreatedAt,
		&transfer.TraceID,
		&transfer.Login,
		&transfer.Source,
		&transfer.Destination,
		&transfer.Amount,
		&transfer.SourceBalance,
		&transfer.DestinationBalance,
	)
}
