package store

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

func IsErrNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Builder returns a statement builder using the placeholder format of driver.
func Builder(driver string) sq.StatementBuilderType {
	switch driver {
	case "postgres", "pgx":
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	default:
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
}
