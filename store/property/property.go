package property

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pandodao/card-transfer/core"
	"github.com/pandodao/card-transfer/store"
	"github.com/tsenart/nap"
)

type propertyStore struct {
	db *nap.DB
	sb sq.StatementBuilderType
}

func New(db *nap.DB, sb sq.StatementBuilderType) core.PropertyStore {
	return &propertyStore{db: db, sb: sb}
}

func (s *propertyStore) Get(ctx context.Context, name string, value any) error {
	b := s.sb.Select("payload").From("properties").Where(sq.Eq{"name": name})

	var raw string
	if err := b.RunWith(s.db).QueryRowContext(ctx).Scan(&raw); err == nil {
		return json.Unmarshal([]byte(raw), value)
	} else if store.IsErrNotFound(err) {
		return nil
	} else {
		return err
	}
}

func (s *propertyStore) Set(ctx context.Context, name string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	u := s.sb.Update("properties").
		Set("payload", string(payload)).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"name": name})
	r, err := u.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to set property: %w", err)
	}

	n, err := r.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if n > 0 {
		return nil
	}

	i := s.sb.Insert("properties").Columns("name", "payload").Values(name, string(payload))
	if _, err := i.RunWith(s.db).ExecContext(ctx); err != nil {
		return errors.Join(fmt.Errorf("failed to insert property %s", name), err)
	}

	return nil
}
