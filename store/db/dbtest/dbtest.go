// Package dbtest opens throwaway SQLite databases migrated with the real schema.
package dbtest

import (
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pandodao/card-transfer/store/db"
	"github.com/tsenart/nap"
)

const Driver = "sqlite3"

func Open(t testing.TB) *nap.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "card-transfer.db") + "?_busy_timeout=5000&_txlock=immediate"
	conn, err := nap.Open(Driver, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() { _ = conn.Close() })

	if err := db.Migrate(conn.Master(), Driver); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return conn
}
