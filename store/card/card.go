package card

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pandodao/card-transfer/core"
	"github.com/tsenart/nap"
)

func New(db *nap.DB, sb sq.StatementBuilderType) core.CardStore {
	return &store{db: db, sb: sb}
}

type store struct {
	db *nap.DB
	sb sq.StatementBuilderType
}

var columns = []string{"seq", "number", "owner_login", "balance", "created_at"}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(scanner scanner, card *core.Card) error {
	return scanner.Scan(
		&card.Seq,
		&card.Number,
		&card.OwnerLogin,
		&card.Balance,
		&card.CreatedAt,
	)
}

func (s *store) Create(ctx context.Context, card *core.Card) error {
	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	b := s.sb.Insert("cards").
		Columns("number", "owner_login", "balance", "created_at").
		Values(card.Number, card.OwnerLogin, card.Balance, card.CreatedAt)

	_, err := b.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *store) Find(ctx context.Context, number core.CardNumber) (*core.Card, error) {
	b := s.sb.Select(columns...).From("cards").Where(sq.Eq{"number": number})
	row := b.RunWith(s.db).QueryRowContext(ctx)

	var card core.Card
	if err := scanCard(row, &card); err != nil {
		return nil, err
	}

	return &card, nil
}

func (s *store) ListOwner(ctx context.Context, login string) ([]*core.Card, error) {
	b := s.sb.Select(columns...).
		From("cards").
		Where(sq.Eq{"owner_login": login}).
		OrderBy("seq")

	rows, err := b.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var cards []*core.Card
	for rows.Next() {
		var card core.Card
		if err := scanCard(rows, &card); err != nil {
			return nil, err
		}

		cards = append(cards, &card)
	}

	return cards, rows.Err()
}

func (s *store) Sum(ctx context.Context) (*core.Ledger, error) {
	b := s.sb.Select(
		"COUNT(*)",
		"COALESCE(SUM(balance), 0)",
		"COALESCE(SUM(CASE WHEN balance < 0 THEN 1 ELSE 0 END), 0)",
	).From("cards")

	var ledger core.Ledger
	if err := b.RunWith(s.db).QueryRowContext(ctx).Scan(&ledger.Cards, &ledger.Total, &ledger.Negative); err != nil {
		return nil, err
	}

	return &ledger, nil
}
