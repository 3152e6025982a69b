package transfer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pandodao/card-transfer/core"
	"github.com/tsenart/nap"
)

func New(db *nap.DB, sb sq.StatementBuilderType) core.TransferStore {
	return &store{db: db, sb: sb}
}

type store struct {
	db *nap.DB
	sb sq.StatementBuilderType
}

func (s *store) debit(ctx context.Context, tx *sql.Tx, number core.CardNumber, amount int64) error {
	b := s.sb.Update("cards").
		Set("balance", sq.Expr("balance - ?", amount)).
		Where("number = ? AND balance >= ?", number, amount)
	r, err := b.RunWith(tx).ExecContext(ctx)
	if err != nil {
		return err
	}

	n, err := r.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return core.ErrInsufficientFunds
	}

	return nil
}

func (s *store) credit(ctx context.Context, tx *sql.Tx, number core.CardNumber, amount int64) error {
	b := s.sb.Update("cards").
		Set("balance", sq.Expr("balance + ?", amount)).
		Where("number = ?", number)
	r, err := b.RunWith(tx).ExecContext(ctx)
	if err != nil {
		return err
	}

	n, err := r.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return fmt.Errorf("credit card %s: %w", number.Masked(), sql.ErrNoRows)
	}

	return nil
}

func (s *store) balance(ctx context.Context, tx *sql.Tx, number core.CardNumber) (int64, error) {
	b := s.sb.Select("balance").From("cards").Where(sq.Eq{"number": number})

	var balance int64
	err := b.RunWith(tx).QueryRowContext(ctx).Scan(&balance)
	return balance, err
}

func (s *store) insert(ctx context.Context, tx *sql.Tx, transfer *core.Transfer) error {
	b := s.sb.Insert("transfers").
		Columns("trace_id", "login", "source", "destination", "amount", "source_balance", "destination_balance", "created_at").
		Values(transfer.TraceID, transfer.Login, transfer.Source, transfer.Destination, transfer.Amount, transfer.SourceBalance, transfer.DestinationBalance, transfer.CreatedAt)
	if _, err := b.RunWith(tx).ExecContext(ctx); err != nil {
		return err
	}

	q := s.sb.Select("id").From("transfers").Where(sq.Eq{"trace_id": transfer.TraceID})
	return q.RunWith(tx).QueryRowContext(ctx).Scan(&transfer.ID)
}

func (s *store) Apply(ctx context.Context, transfer *core.Transfer) error {
	if transfer.CreatedAt.IsZero() {
		transfer.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Master().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if err := s.debit(ctx, tx, transfer.Source, transfer.Amount); err != nil {
		return err
	}

	if err := s.credit(ctx, tx, transfer.Destination, transfer.Amount); err != nil {
		return err
	}

	if transfer.SourceBalance, err = s.balance(ctx, tx, transfer.Source); err != nil {
		return err
	}

	if transfer.DestinationBalance, err = s.balance(ctx, tx, transfer.Destination); err != nil {
		return err
	}

	if err := s.insert(ctx, tx, transfer); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *store) FindTrace(ctx context.Context, traceID string) (*core.Transfer, error) {
	b := s.sb.Select(scanColumns...).
		From("transfers").
		Where("trace_id = ?", traceID)
	row := b.RunWith(s.db).QueryRowContext(ctx)

	var transfer core.Transfer
	if err := scanTransfer(row, &transfer); err != nil {
		return nil, err
	}

	return &transfer, nil
}

func (s *store) ListLogin(ctx context.Context, login string, limit int) ([]*core.Transfer, error) {
	b := s.sb.Select(scanColumns...).
		From("transfers").
		Where("login = ?", login).
		OrderBy("id DESC").
		Limit(uint64(limit))

	rows, err := b.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var transfers []*core.Transfer
	for rows.Next() {
		var transfer core.Transfer
		if err := scanTransfer(rows, &transfer); err != nil {
			return nil, err
		}

		transfers = append(transfers, &transfer)
	}

	return transfers, rows.Err()
}
